package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonplan/internal/cli"
	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/roadmap"
)

// isolate points every config location at temp directories and resets the
// global state after the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARBONPLAN_HOME", home)
	t.Setenv("CARBONPLAN_PROJECT_DIR", "")
	t.Setenv("CARBONPLAN_LOG_LEVEL", "error")
	t.Setenv("CARBONPLAN_LLM_PROVIDER", "")
	t.Setenv("CARBONPLAN_LLM_MODEL", "")
	t.Setenv("CARBONPLAN_CACHE_ENABLED", "")
	t.Setenv("CARBONPLAN_SERVER_ADDRESS", "")
	t.Setenv("CARBONPLAN_LOG_FORMAT", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, deps cli.Deps, args ...string) (string, string, error) {
	t.Helper()
	return runWithInput(t, deps, "", args...)
}

// runWithInput is run with stdin replaced by input.
func runWithInput(t *testing.T, deps cli.Deps, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithDeps("test", deps)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// fakeGenerator records requests and answers with a fixed roadmap.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	payloads []roadmap.Payload
	markdown string
	err      error
}

func (g *fakeGenerator) Generate(_ context.Context, p roadmap.Payload) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.payloads = append(g.payloads, p)
	return g.markdown, g.err
}

func (g *fakeGenerator) last(t *testing.T) roadmap.Payload {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	require.NotEmpty(t, g.payloads)
	return g.payloads[len(g.payloads)-1]
}

func depsWith(gen roadmap.Generator) cli.Deps {
	return cli.Deps{NewGenerator: func(context.Context, *config.Config) (roadmap.Generator, error) {
		return gen, nil
	}}
}

func failingDeps(err error) cli.Deps {
	return cli.Deps{NewGenerator: func(context.Context, *config.Config) (roadmap.Generator, error) {
		return nil, err
	}}
}

var errNoKey = errors.New("llm api key is not set")

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newJar() http.CookieJar {
	jar, _ := cookiejar.New(nil)
	return jar
}
