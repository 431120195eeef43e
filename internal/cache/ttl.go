package cache

import (
	"fmt"
	"time"
)

// TTL bounds for cached roadmaps.
const (
	DefaultTTL = time.Hour
	MinTTL     = time.Minute
	MaxTTL     = 7 * 24 * time.Hour

	// DefaultTTLSeconds mirrors the cache.ttl_seconds config default.
	DefaultTTLSeconds = int(DefaultTTL / time.Second)
)

// ResolveTTL converts a configured number of seconds into a duration
// clamped to MinTTL..MaxTTL. Zero or negative means DefaultTTL.
func ResolveTTL(seconds int) time.Duration {
	if seconds <= 0 {
		return DefaultTTL
	}
	if seconds > int(MaxTTL/time.Second) {
		return MaxTTL
	}
	return max(time.Duration(seconds)*time.Second, MinTTL)
}

// FormatDuration renders d with at most two units, for example "45s",
// "30m", "2h30m" or "3d2h".
func FormatDuration(d time.Duration) string {
	const day = 24 * time.Hour

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Round(time.Second)/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Round(time.Minute)/time.Minute))
	case d < day:
		return twoUnits(int(d/time.Hour), "h", int(d%time.Hour/time.Minute), "m")
	default:
		return twoUnits(int(d/day), "d", int(d%day/time.Hour), "h")
	}
}

func twoUnits(major int, majorUnit string, minor int, minorUnit string) string {
	if minor == 0 {
		return fmt.Sprintf("%d%s", major, majorUnit)
	}
	return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
}
