//go:build mage

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCmdWithEnv(t *testing.T) {
	out, err := executeCmd("sh", withArgs("-c", `printf %s "$GDMLSTUDIO_CONFIG"`), withEnv("GDMLSTUDIO_CONFIG=custom.toml"))
	require.NoError(t, err)
	assert.Equal(t, "custom.toml", out)
}

func TestExecuteCmdWithDir(t *testing.T) {
	dir := t.TempDir()
	out, err := executeCmd("pwd", withDir(dir))
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out))
	assert.Equal(t, want, got)
}

func TestViewerEnvForwardsConfig(t *testing.T) {
	t.Setenv("CONFIG", "studio.toml")
	spec := &cmdSpec{}
	viewerEnv()(spec)
	assert.Equal(t, []string{"GDMLSTUDIO_CONFIG=studio.toml"}, spec.env)

	require.NoError(t, os.Unsetenv("CONFIG"))
	spec = &cmdSpec{}
	viewerEnv()(spec)
	assert.Empty(t, spec.env)
}

func TestExecuteCmdReportsFailure(t *testing.T) {
	_, err := executeCmd("sh", withArgs("-c", "exit 3"))
	assert.Error(t, err)
}
