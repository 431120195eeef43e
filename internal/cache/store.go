package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const entryExt = ".json"

// Store errors.
var (
	ErrCacheNotFound     = errors.New("cache entry not found")
	ErrCacheExpired      = errors.New("cache entry expired")
	ErrCacheIncompatible = errors.New("cache entry written by incompatible version")
	ErrInvalidCacheKey   = errors.New("cache key cannot be empty")
	ErrCacheDisabled     = errors.New("cache is disabled")
)

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// FileStore keeps one JSON file per entry in a single directory. It is safe
// for concurrent use within one process.
type FileStore struct {
	dir     string
	enabled bool
	ttl     time.Duration
	version string
	now     func() time.Time

	mu sync.RWMutex
}

// Stats summarizes the files in a store.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
}

// NewFileStore opens dir, creating it when needed. A disabled store needs no
// directory and rejects every operation with ErrCacheDisabled.
func NewFileStore(dir string, enabled bool, ttl time.Duration, version string) (*FileStore, error) {
	if !enabled {
		return &FileStore{}, nil
	}
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{dir: dir, enabled: true, ttl: ttl, version: version, now: time.Now}, nil
}

// Enabled reports whether the store reads and writes entries.
func (s *FileStore) Enabled() bool { return s.enabled }

// Dir is the directory holding the entries.
func (s *FileStore) Dir() string { return s.dir }

// TTL is the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration { return s.ttl }

// Get returns the entry stored under key. Expired entries and entries from
// another major version are deleted and reported as ErrCacheExpired and
// ErrCacheIncompatible.
func (s *FileStore) Get(key string) (*Entry, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	entry, err := readEntry(path)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheNotFound
	}
	if err != nil {
		return nil, err
	}

	if entry.Expired(s.now()) {
		s.discard(path)
		return nil, ErrCacheExpired
	}
	if !entry.CompatibleWith(s.version) {
		s.discard(path)
		return nil, fmt.Errorf("%w: %s", ErrCacheIncompatible, entry.Version)
	}
	return entry, nil
}

// Set writes data under key, replacing any previous entry. The file is
// renamed into place so readers never see a partial entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(NewEntry(key, data, s.now(), s.ttl, s.version), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *FileStore) Delete(key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.walk(func(path string, _ fs.DirEntry) error {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

// Prune removes expired, incompatible and unreadable entries and returns
// how many files it deleted.
func (s *FileStore) Prune() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	err := s.walk(func(path string, _ fs.DirEntry) error {
		entry, err := readEntry(path)
		if err == nil && !entry.stale(now, s.version) {
			return nil
		}
		if os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed, err
}

// Stats counts entries and their total size. Unreadable files count as
// expired.
func (s *FileStore) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var st Stats
	err := s.walk(func(path string, d fs.DirEntry) error {
		st.Entries++
		if info, err := d.Info(); err == nil {
			st.Bytes += info.Size()
		}
		if entry, err := readEntry(path); err != nil || entry.stale(now, s.version) {
			st.Expired++
		}
		return nil
	})
	return st, err
}

// walk calls fn for every entry file. Callers hold s.mu.
func (s *FileStore) walk(fn func(path string, d fs.DirEntry) error) error {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, d := range files {
		if d.IsDir() || filepath.Ext(d.Name()) != entryExt {
			continue
		}
		if err = fn(filepath.Join(s.dir, d.Name()), d); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) pathFor(key string) (string, error) {
	if !s.enabled {
		return "", ErrCacheDisabled
	}
	if key == "" {
		return "", ErrInvalidCacheKey
	}
	return filepath.Join(s.dir, keyReplacer.Replace(key)+entryExt), nil
}

func (s *FileStore) discard(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(path)
}

func readEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry %s: %w", filepath.Base(path), err)
	}
	return &entry, nil
}
