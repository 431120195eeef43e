package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rshade/carbonplan/internal/cache"
	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/scenario"
)

// Sentinel errors.
var (
	ErrNoScenario   = errors.New("calculate the emission scenario before generating a roadmap")
	ErrEmptyRoadmap = errors.New("generator returned an empty roadmap")
)

const cacheOperation = "roadmap"

// Roadmap is a generated roadmap and where it came from.
type Roadmap struct {
	Markdown    string    `json:"markdown"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"-"`
}

// Request is everything a roadmap is generated from.
type Request struct {
	Profile company.Profile
	Input   scenario.Input
	Result  scenario.Result
}

// Cache is the subset of cache.FileStore the service needs.
type Cache interface {
	Get(key string) (*cache.Entry, error)
	Set(key string, data json.RawMessage) error
}

// Service generates roadmaps, answering repeated requests from the cache.
type Service struct {
	generator Generator
	cache     Cache
	provider  string
	model     string
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables response caching.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wraps gen. Provider and model are taken from gen when it
// implements Describer.
func NewService(gen Generator, opts ...Option) *Service {
	s := &Service{
		generator: gen,
		provider:  "custom",
		now:       time.Now,
	}
	if d, ok := gen.(Describer); ok {
		s.provider = d.Provider()
		s.model = d.Model()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate returns the roadmap for req. The request must carry a projected
// scenario. Cache failures are treated as misses; generator errors are
// returned wrapped.
func (s *Service) Generate(ctx context.Context, req Request) (*Roadmap, error) {
	log := logging.FromContext(ctx)

	if len(req.Result) == 0 {
		return nil, ErrNoScenario
	}

	payload := NewPayload(req.Profile, req.Input, req.Result)
	key := s.cacheKey(ctx, payload)

	if cached := s.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, payload)
	elapsed := time.Since(start)
	if err != nil {
		log.Warn().
			Str("component", "roadmap").
			Str("operation", "generate").
			Str("provider", s.provider).
			Dur("duration", elapsed).
			Err(err).
			Msg("roadmap generation failed")
		return nil, fmt.Errorf("generating roadmap: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyRoadmap
	}

	rm := &Roadmap{
		Markdown:    text,
		Provider:    s.provider,
		Model:       s.model,
		GeneratedAt: s.now().UTC(),
	}

	log.Info().
		Str("component", "roadmap").
		Str("operation", "generate").
		Str("provider", s.provider).
		Str("model", s.model).
		Dur("duration", elapsed).
		Int("roadmap_bytes", len(text)).
		Msg("roadmap generated")

	s.store(ctx, key, rm)
	return rm, nil
}

func (s *Service) cacheKey(ctx context.Context, p Payload) string {
	if s.cache == nil {
		return ""
	}
	data, err := p.JSON()
	if err != nil {
		return ""
	}
	key, err := cache.GenerateKey(cache.KeyParams{
		Operation: cacheOperation,
		Provider:  s.provider,
		Model:     s.model,
		Payload:   data,
	})
	if err != nil {
		logging.FromContext(ctx).Debug().
			Str("component", "roadmap").
			Err(err).
			Msg("cache key generation failed")
		return ""
	}
	return key
}

func (s *Service) lookup(ctx context.Context, key string) *Roadmap {
	if key == "" {
		return nil
	}
	log := logging.FromContext(ctx)

	entry, err := s.cache.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) {
			log.Debug().Str("component", "roadmap").Err(err).Msg("cache miss")
		}
		return nil
	}

	var rm Roadmap
	if err = json.Unmarshal(entry.Data, &rm); err != nil || strings.TrimSpace(rm.Markdown) == "" {
		log.Debug().Str("component", "roadmap").Err(err).Msg("ignoring unreadable cache entry")
		return nil
	}
	rm.Cached = true

	log.Info().
		Str("component", "roadmap").
		Str("operation", "generate").
		Str("cache_key", key[:12]).
		Dur("age", entry.Age()).
		Msg("roadmap served from cache")
	return &rm
}

func (s *Service) store(ctx context.Context, key string, rm *Roadmap) {
	if key == "" {
		return
	}
	data, err := json.Marshal(rm)
	if err == nil {
		err = s.cache.Set(key, data)
	}
	if err != nil {
		logging.FromContext(ctx).Debug().
			Str("component", "roadmap").
			Err(err).
			Msg("roadmap not cached")
	}
}
