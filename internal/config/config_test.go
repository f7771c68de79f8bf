package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fuzzmerge/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "0.7.2", cfg.ReportVersion)
	assert.Equal(t, "reference", cfg.PriorityTeam)
	assert.Equal(t, "README.md", cfg.ReadmePath)
	assert.Equal(t, "<!-- CONFORMANCE_TABLE_START -->", cfg.MarkerStart)
	assert.Equal(t, "<!-- CONFORMANCE_TABLE_END -->", cfg.MarkerEnd)
	assert.NotEmpty(t, cfg.Workdir)
	assert.Empty(t, cfg.RepoURL)
}

func TestMerge_NonEmptyFieldsWin(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Merge(config.Config{
		RepoURL:      "https://example.com/r",
		PriorityTeam: "alice",
	})

	assert.Equal(t, "https://example.com/r", cfg.RepoURL)
	assert.Equal(t, "alice", cfg.PriorityTeam)
	// Untouched fields keep their defaults.
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "0.7.2", cfg.ReportVersion)
}

func TestMerge_EmptyOverlayIsNoop(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	before := cfg
	cfg.Merge(config.Config{})
	assert.Equal(t, before, cfg)
}
