package cli_test

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonplan/internal/cli"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServe_RoadmapRoundTrip(t *testing.T) {
	isolate(t)
	addr := freeAddress(t)
	gen := &fakeGenerator{markdown: "## Phase 1\n- Insulate the warehouse"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := cli.NewRootCmdWithDeps("test", depsWith(gen))
	cmd.SetArgs([]string{"serve", "--address", addr})
	cmd.SetOut(&strings.Builder{})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	base := "http://" + addr
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz") //nolint:noctx // Test probe.
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	jar := newJar()
	client := &http.Client{Jar: jar}

	resp, err := client.PostForm(base+"/scenario", url.Values{
		"scope1": {"300"}, "scope2": {"200"}, "reduction": {"50"}, "years": {"4"},
	})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.PostForm(base+"/roadmap", url.Values{})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := gen.last(t)
	assert.InDelta(t, 300.0, p.Scope1, 1e-9)
	assert.Len(t, p.Scenario, 5)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
