package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Media.CacheMinutes)
	assert.Equal(t, time.Hour, cfg.Media.CacheTTL())
	assert.Equal(t, []string{"assets"}, cfg.Media.SkipSegments)
	assert.Equal(t, []string{"getmedia"}, cfg.Media.ResolvedMarkers)
	assert.Equal(t, "", cfg.Catalog.SyncCron)
}

func TestLoadConfigFromOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
media:
  site_name: corporate
  cache_minutes: 5
  skip_segments: ["assets", "static"]
store:
  qps: 20
catalog:
  sync_cron: "*/5 * * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "corporate", cfg.Media.SiteName)
	assert.Equal(t, 5*time.Minute, cfg.Media.CacheTTL())
	assert.Equal(t, []string{"assets", "static"}, cfg.Media.SkipSegments)
	assert.Equal(t, 20, cfg.Store.QPS)
	assert.Equal(t, "*/5 * * * *", cfg.Catalog.SyncCron)
}

func TestLoadConfigFromMissingFile(t *testing.T) {
	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
