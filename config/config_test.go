package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "domination.db", cfg.DatabasePath)
	require.False(t, cfg.PrettyLog)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DATABASE_PATH", "/tmp/games.db")
	t.Setenv("PRETTY_LOG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "/tmp/games.db", cfg.DatabasePath)
	require.True(t, cfg.PrettyLog)
}
