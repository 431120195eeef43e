package version

import (
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion_IsSemver(t *testing.T) {
	v, err := semver.NewVersion(GetVersion())
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestBuildMetadata(t *testing.T) {
	assert.NotEmpty(t, GetGitCommit())
	assert.NotEmpty(t, GetBuildDate())
	assert.True(t, strings.HasPrefix(GetGoVersion(), "go"))
}
