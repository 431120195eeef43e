package cache

import (
	"encoding/json"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Entry is one cached roadmap response as stored on disk.
type Entry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	// Version is the carbonplan build that wrote the entry.
	Version string `json:"version,omitempty"`
}

// NewEntry stamps data as written at now and expiring ttl later.
func NewEntry(key string, data json.RawMessage, now time.Time, ttl time.Duration, version string) *Entry {
	now = now.UTC()
	return &Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Version:   version,
	}
}

// Expired reports whether the entry is past its expiry at now.
func (e *Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Age is the time since the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// CompatibleWith reports whether running shares the major version of the
// build that wrote the entry. Versions that are not semver only match
// themselves.
func (e *Entry) CompatibleWith(running string) bool {
	if e.Version == running {
		return true
	}
	written, err := semver.NewVersion(e.Version)
	if err != nil {
		return false
	}
	current, err := semver.NewVersion(running)
	if err != nil {
		return false
	}
	return written.Major() == current.Major()
}

// stale reports whether a store running version should discard the entry.
func (e *Entry) stale(now time.Time, version string) bool {
	return e.Expired(now) || !e.CompatibleWith(version)
}
