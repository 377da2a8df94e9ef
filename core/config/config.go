package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"gallery-sync/core/database"
	"gallery-sync/core/logger"
	"gallery-sync/core/server"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/parser"
	"gallery-sync/feature/gallery/reconciler"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (MinIO, B2 or any S3 endpoint).
	Storage storage.Config `mapstructure:"storage"`
	// Gallery describes the key layout and public URLs of the gallery tree.
	Gallery parser.Config `mapstructure:"gallery"`
	// Sync controls sync passes, the scheduler and degraded reads.
	Sync reconciler.Config `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// SYNC_PRUNE_ON_EMPTY -> sync.prune_on_empty
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Storage.Provider {
	case storage.ProviderMinio, storage.ProviderS3:
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if c.Sync.IntervalSeconds < 0 || c.Sync.Workers < 0 || c.Sync.CacheTTLSeconds < 0 {
		return fmt.Errorf("sync values must not be negative")
	}
	return nil
}

// bindValues walks the struct and registers every `mapstructure` key in Viper
// with the value of its `default` tag, so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
