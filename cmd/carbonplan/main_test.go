package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/scenario"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARBONPLAN_HOME", t.TempDir())
	t.Setenv("CARBONPLAN_PROJECT_DIR", "")
	t.Setenv("CARBONPLAN_LOG_LEVEL", "error")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "version", args: []string{"--version"}, wantCode: exitOK},
		{name: "scenario", args: []string{"scenario", "--scope1", "10", "--output", "csv"}, wantCode: exitOK},
		{name: "invalid scenario", args: []string{"scenario", "--years", "0"}, wantCode: exitUsage, wantErr: "horizon"},
		{name: "unknown command", args: []string{"forecast"}, wantCode: exitFailure, wantErr: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			var stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stderr)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), "Error: ")
				assert.Contains(t, stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "negative emissions", err: scenario.ErrNegativeEmissions, want: exitUsage},
		{name: "wrapped growth", err: fmt.Errorf("invalid scenario: %w", scenario.ErrGrowthOutOfRange), want: exitUsage},
		{name: "joined option", err: errors.Join(errors.New("x"), company.ErrUnknownOption), want: exitUsage},
		{name: "config", err: config.ErrInvalidConfig, want: exitUsage},
		{name: "other", err: errors.New("network down"), want: exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
