package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	limits := cfg.SearchLimits()
	require.Equal(t, mcts.EngineCycles, limits.Cycles)
	require.Equal(t, mcts.EngineMovetime, limits.Movetime)
	require.False(t, limits.Infinite)

	geo, err := cfg.Geometry()
	require.NoError(t, err)
	require.Equal(t, 9, geo.Size())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
engine:
  exploration: 1.2
  minimax: true
  overflow: grow
  seed: 7
limits:
  cycles: 500
  movetime_ms: 0
board:
  rows: 4
  cols: 4
  in_row: 3
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1.2, cfg.Engine.Exploration)
	require.True(t, cfg.Engine.Minimax)
	require.Equal(t, uint64(7), cfg.Engine.Seed)
	// untouched sections keep their defaults
	require.Equal(t, mcts.DefaultMaxPly, cfg.Engine.MaxPly)
	require.Equal(t, ":8080", cfg.Server.Addr)

	policy, err := cfg.OverflowPolicy()
	require.NoError(t, err)
	require.Equal(t, mcts.OverflowGrow, policy)

	limits := cfg.SearchLimits()
	require.Equal(t, uint32(500), limits.Cycles)
	require.Equal(t, mcts.DefaultMovetimeLimit, limits.Movetime)

	settings := mcts.Settings{}
	for _, opt := range cfg.EngineOptions() {
		opt(&settings)
	}
	require.Equal(t, 1.2, settings.Exploration)
	require.True(t, settings.Minimax)
	require.Equal(t, mcts.OverflowGrow, settings.Overflow)
	require.Equal(t, uint64(7), settings.Seed)
	require.Equal(t, uint32(500), settings.Limits.Cycles)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"overflow": "engine:\n  overflow: drop\n",
		"board":    "board:\n  rows: 9\n  cols: 9\n",
		"level":    "log:\n  level: loud\n",
		"syntax":   "engine: [1, 2\n",
		"workers":  "arena:\n  workers: 0\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
