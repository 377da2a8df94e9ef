package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/metrics", cfg.Server.MetricsPath)
	assert.Equal(t, "minio", cfg.Storage.Provider)
	assert.Equal(t, "gallery", cfg.Storage.Bucket)
	assert.Equal(t, 1000, cfg.Storage.PageSize)
	assert.Equal(t, "photos", cfg.Gallery.BasePath)
	assert.Equal(t, 900, cfg.Sync.IntervalSeconds)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.True(t, cfg.Sync.OnDemand)
	assert.False(t, cfg.Sync.PruneOnEmpty)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_PROVIDER", "s3")
	t.Setenv("GALLERY_PUBLIC_URL", "https://f000.backblazeb2.com")
	t.Setenv("SYNC_PRUNE_ON_EMPTY", "true")
	t.Setenv("SYNC_WORKERS", "3")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "s3", cfg.Storage.Provider)
	assert.Equal(t, "https://f000.backblazeb2.com", cfg.Gallery.PublicURL)
	assert.True(t, cfg.Sync.PruneOnEmpty)
	assert.Equal(t, 3, cfg.Sync.Workers)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_DRIVER=postgres\nDATABASE_PORT=5432\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("DATABASE_PORT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	bad := *cfg
	bad.Storage.Provider = "ftp"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Sync.Workers = -1
	assert.Error(t, bad.Validate())
}
