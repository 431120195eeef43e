package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/scenario"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned by Update for an unknown or expired session.
var ErrNotFound = errors.New("session not found")

// Store keeps session states in memory. Every successful Get, Save or
// Update restarts the entry's TTL. Safe for concurrent use.
type Store struct {
	// mu makes the read and TTL refresh in Get and the read-modify-write
	// in Update atomic with respect to Save.
	mu       sync.Mutex
	items    *gocache.Cache
	ttl      time.Duration
	profile  company.Profile
	defaults scenario.Input
}

// NewStore returns a store whose new sessions start from profile and
// defaults. A non-positive ttl selects DefaultTTL.
func NewStore(ttl time.Duration, profile company.Profile, defaults scenario.Input) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		items:    gocache.New(ttl, 2*ttl),
		ttl:      ttl,
		profile:  profile,
		defaults: defaults,
	}
}

// Create starts a new session with a random id.
func (s *Store) Create() *State {
	st := NewState(uuid.NewString(), s.profile, s.defaults)
	s.Save(st)
	return st
}

// Get returns a copy of the session's state and whether it exists.
func (s *Store) Get(id string) (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired.
func (s *Store) GetOrCreate(id string) *State {
	if st, ok := s.Get(id); ok {
		return st
	}
	return s.Create()
}

// Save stores st under its id.
func (s *Store) Save(st *State) {
	if st == nil || st.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Set(st.ID, *st, gocache.DefaultExpiration)
}

// Update applies fn to the stored state of id and saves the result unless
// fn fails. No Save can interleave with it. The returned state is the one
// fn saw, with its changes when it succeeded.
func (s *Store) Update(id string, fn func(*State) error) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.load(id)
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(st); err != nil {
		return st, err
	}
	s.items.Set(id, *st, gocache.DefaultExpiration)
	return st, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.items.Delete(id)
}

// Len reports the number of stored sessions, including expired ones not yet
// swept.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

// TTL returns the idle timeout.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// load returns a copy of the state for id and refreshes its TTL. Callers
// hold s.mu.
func (s *Store) load(id string) (*State, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	st, ok := v.(State)
	if !ok {
		return nil, false
	}
	s.items.Set(id, st, gocache.DefaultExpiration)
	return &st, true
}
