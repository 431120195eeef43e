// Package cache provides file-based caching with TTL expiration for
// generated roadmaps.
//
// Roadmap generation is slow and billed per call, so identical requests are
// answered from disk while the entry is fresh. Key features:
//   - One JSON file per entry in ~/.carbonplan/cache/
//   - Configurable TTL (default 1 hour, 1 minute to 7 days)
//   - SHA256 keys derived from the request payload, provider and model
//   - Entries written by a different major version are ignored
package cache
