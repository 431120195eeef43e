package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonplan/internal/config"
)

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMergeOverlay(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		check   func(t *testing.T, got, before *config.Config)
	}{
		{
			name:    "replaces named section only",
			overlay: "output:\n  default_format: json\n  precision: 4\n",
			check: func(t *testing.T, got, before *config.Config) {
				assert.Equal(t, config.OutputConfig{DefaultFormat: "json", Precision: 4}, got.Output)
				assert.Equal(t, before.Logging, got.Logging)
				assert.Equal(t, before.LLM, got.LLM)
				assert.Equal(t, before.Cache, got.Cache)
			},
		},
		{
			name: "several sections",
			overlay: `
scenario:
  baseline_year: 2023
  growth_rate_percent: 3.5
  reduction_rate_percent: 80
  horizon_years: 10
cache:
  enabled: false
  ttl_seconds: 600
`,
			check: func(t *testing.T, got, _ *config.Config) {
				assert.Equal(t, config.ScenarioConfig{
					BaselineYear: 2023, GrowthRatePercent: 3.5, ReductionRatePercent: 80, HorizonYears: 10,
				}, got.Scenario)
				assert.Equal(t, config.CacheConfig{TTLSeconds: 600}, got.Cache)
			},
		},
		{
			name:    "omitted fields become zero",
			overlay: "llm:\n  provider: gemini\n",
			check: func(t *testing.T, got, _ *config.Config) {
				assert.Equal(t, config.LLMConfig{Provider: "gemini"}, got.LLM)
			},
		},
		{
			name:    "unknown keys ignored",
			overlay: "plugins:\n  x: 1\nserver:\n  address: 0.0.0.0:9000\n  session_ttl_seconds: 60\n",
			check: func(t *testing.T, got, _ *config.Config) {
				assert.Equal(t, config.ServerConfig{Address: "0.0.0.0:9000", SessionTTLSeconds: 60}, got.Server)
			},
		},
		{
			name:    "comment only",
			overlay: "# nothing here\n",
			check: func(t *testing.T, got, before *config.Config) {
				assert.Equal(t, before, got)
			},
		},
		{
			name:    "empty",
			overlay: "",
			check: func(t *testing.T, got, before *config.Config) {
				assert.Equal(t, before, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := config.Defaults()
			got := config.Defaults()

			require.NoError(t, config.MergeOverlay(got, writeOverlay(t, tt.overlay)))
			tt.check(t, got, before)
		})
	}
}

func TestMergeOverlay_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  *config.Config
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "broken yaml",
			target:  config.Defaults(),
			path:    func(t *testing.T) string { return writeOverlay(t, "output: [unterminated\n") },
			wantErr: "parsing overlay",
		},
		{
			name:    "wrong section type",
			target:  config.Defaults(),
			path:    func(t *testing.T) string { return writeOverlay(t, "cache:\n  enabled: [1]\n") },
			wantErr: "overlay section cache",
		},
		{
			name:    "missing file",
			target:  config.Defaults(),
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			wantErr: "reading overlay",
		},
		{
			name:    "nil target",
			path:    func(t *testing.T) string { return writeOverlay(t, "output: {}\n") },
			wantErr: "nil config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.MergeOverlay(tt.target, tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
