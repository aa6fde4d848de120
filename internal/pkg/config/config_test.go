//go:build unit

package config_test

import (
	"os"
	"testing"
	"time"

	"shareit/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		t.Setenv("PORT", "8080")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, config.StorageDriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.False(t, cfg.Redis.Enabled())
		assert.Equal(t, time.Minute, cfg.Redis.SearchCacheTTL)
		assert.Contains(t, cfg.CORS.AllowHeaders, "X-Sharer-User-Id")
	})

	t.Run("missing port", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		require.NoError(t, os.Unsetenv("PORT"))

		_, err := config.LoadConfig()
		require.Error(t, err)
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("STORAGE_DRIVER", "sqlite")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})

	t.Run("memory driver with redis", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("REDIS_ADDR", "localhost:6379")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, config.StorageDriverMemory, cfg.Storage.Driver)
		assert.True(t, cfg.Redis.Enabled())
	})
}

func TestBuildDSN(t *testing.T) {
	db := config.DBConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "shareit", SSLMode: "disable", TimeZone: "UTC",
	}
	assert.Equal(t, "postgres://u:p@db:5432/shareit?sslmode=disable&timezone=UTC", db.BuildDSN())
}
