package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonplan/internal/config"
)

func TestEnsureGitignore(t *testing.T) {
	tests := []struct {
		name        string
		existing    *string
		wantChanged bool
		want        string
	}{
		{
			name:        "new file",
			wantChanged: true,
			want:        "# carbonplan project-local data (auto-generated)\ncache/\n*.log\nroadmap.txt\n",
		},
		{
			name:        "appends missing patterns",
			existing:    ptr("node_modules/\ncache/"),
			wantChanged: true,
			want:        "node_modules/\ncache/\n*.log\nroadmap.txt\n",
		},
		{
			name:     "complete file untouched",
			existing: ptr("roadmap.txt\n  cache/  \n*.log\n"),
			want:     "roadmap.txt\n  cache/  \n*.log\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "project", ".carbonplan")
			path := filepath.Join(dir, ".gitignore")
			if tt.existing != nil {
				require.NoError(t, os.MkdirAll(dir, 0o755))
				require.NoError(t, os.WriteFile(path, []byte(*tt.existing), 0o644))
			}

			changed, err := config.EnsureGitignore(dir)

			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEnsureGitignore_Idempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	second, err := config.EnsureGitignore(dir)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

func TestEnsureGitignore_ReadOnlyDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permissions are not enforced here")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	changed, err := config.EnsureGitignore(dir)

	require.Error(t, err)
	assert.False(t, changed)
}

func ptr(s string) *string { return &s }
