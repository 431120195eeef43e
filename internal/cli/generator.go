package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/carbonplan/internal/cache"
	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/llm"
	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/roadmap"
	"github.com/rshade/carbonplan/pkg/version"
)

// newLLMGenerator builds the provider client selected by cfg.LLM.
func newLLMGenerator(_ context.Context, cfg *config.Config) (roadmap.Generator, error) {
	client, err := llm.New(llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey(),
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		MaxRetries:  cfg.LLM.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set %s)", err, cfg.LLM.KeyEnvName())
	}
	return roadmap.NewLLMGenerator(client), nil
}

// newRoadmapService wraps the generator from deps in a roadmap.Service
// with the response cache enabled per cfg.Cache.
func newRoadmapService(ctx context.Context, cfg *config.Config, deps Deps) (*roadmap.Service, error) {
	gen, err := deps.generatorFactory()(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var opts []roadmap.Option
	if store := openCache(ctx, cfg); store != nil {
		opts = append(opts, roadmap.WithCache(store))
	}
	return roadmap.NewService(gen, opts...), nil
}

// openCache returns the roadmap response cache, or nil when caching is
// disabled or the directory cannot be created.
func openCache(ctx context.Context, cfg *config.Config) *cache.FileStore {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir, err := config.GetCacheDir()
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("roadmap cache disabled")
		return nil
	}
	ttl := cache.ResolveTTL(cfg.Cache.TTLSeconds)
	store, err := cache.NewFileStore(dir, true, ttl, version.GetVersion())
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("dir", dir).Msg("roadmap cache disabled")
		return nil
	}
	return store
}
