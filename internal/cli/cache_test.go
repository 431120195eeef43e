package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonplan/internal/cli"
)

func TestCache_StatsClearPrune(t *testing.T) {
	isolate(t)
	gen := &fakeGenerator{markdown: "plan"}

	_, _, err := run(t, depsWith(gen), "roadmap", "--scope1", "100", "--raw")
	require.NoError(t, err)

	out, _, err := run(t, cli.Deps{}, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   1")
	assert.Contains(t, out, "TTL:       1h")

	out, _, err = run(t, cli.Deps{}, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired entries")

	out, _, err = runWithInput(t, cli.Deps{}, "n\n", "cache", "clear")
	require.ErrorContains(t, err, "not cleared")
	assert.Contains(t, out, "Remove 1 cached roadmaps")

	out, _, err = run(t, cli.Deps{}, "cache", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared")

	out, _, err = run(t, cli.Deps{}, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   0")
}

func TestCache_Disabled(t *testing.T) {
	isolate(t)
	t.Setenv("CARBONPLAN_CACHE_ENABLED", "false")

	_, _, err := run(t, cli.Deps{}, "cache", "stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestPrompt_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  cli.PromptResult
	}{
		{input: "y\n", want: cli.PromptResult{Accepted: true}},
		{input: "YES\n", want: cli.PromptResult{Accepted: true}},
		{input: "\n", want: cli.PromptResult{}},
		{input: "nope\n", want: cli.PromptResult{}},
		{input: "", want: cli.PromptResult{}},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer

			got := cli.Confirm(&out, strings.NewReader(tt.input), "Proceed?")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "? Proceed? [y/N] ", out.String())
		})
	}
}
