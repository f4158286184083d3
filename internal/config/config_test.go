package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathplanner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Planner.MaxWaypoints)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  allowedOrigins: ["http://localhost:3000"]
  readTimeout: 5s
graph:
  file: positions.geojson
  watch: true
planner:
  maxWaypoints: 8
log:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "positions.geojson", cfg.Graph.File)
	assert.True(t, cfg.Graph.Watch)
	assert.Equal(t, 8, cfg.Planner.MaxWaypoints)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("PATHPLANNER_ADDR", ":7070")
	t.Setenv("PATHPLANNER_GRAPH_FILE", "other.json")
	t.Setenv("PATHPLANNER_MAX_WAYPOINTS", "4")
	t.Setenv("PATHPLANNER_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "other.json", cfg.Graph.File)
	assert.Equal(t, 4, cfg.Planner.MaxWaypoints)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "server: [\n"},
		{"too few waypoints", "planner:\n  maxWaypoints: 1\n"},
		{"unknown log format", "log:\n  format: xml\n"},
		{"unknown log level", "log:\n  level: loud\n"},
		{"metrics path without slash", "metrics:\n  path: metrics\n"},
		{"empty origins", "server:\n  allowedOrigins: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
