package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserConfigWritesDefaultOnce(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Boards, 1)
	assert.True(t, cfg.Notify.Heartbeat)
	assert.True(t, cfg.Archive.Enabled)

	// A user-edited file survives the next bootstrap.
	require.NoError(t, os.WriteFile(path, []byte("boards:\n  - name: Mine\n    url: https://example.com/feed\n"), 0o644))
	again, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	cfg, err = Load(again)
	require.NoError(t, err)
	require.Len(t, cfg.Boards, 1)
	assert.Equal(t, "Mine", cfg.Boards[0].Name)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("boards:\n  - name: B\n    url: https://example.com/b\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "jobs.json", cfg.State.File)
	assert.Equal(t, 15, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Notify.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Notify.RetryDelaySeconds)
	assert.Equal(t, 1.0, cfg.Notify.MessagesPerSecond)
	assert.Equal(t, 200, cfg.Notify.SnippetMaxRunes)
}

func TestValidate(t *testing.T) {
	var cfg Config
	res := Validate(cfg)
	require.False(t, res.OK())

	cfg.Boards = []Board{
		{Name: "A", URL: "https://example.com/a"},
		{Name: "a", URL: "https://example.com/a2"}, // duplicate, case-insensitive
		{Name: "B", URL: "not a url"},
		{Name: "", URL: "https://example.com/c"},
	}
	res = Validate(cfg)
	require.False(t, res.OK())
	assert.Len(t, res.Errors, 3)

	cfg.Boards = []Board{{Name: "A", URL: "https://example.com/a"}}
	applyDefaults(&cfg)
	assert.True(t, Validate(cfg).OK())
}
