package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("PATHMARK_DB replaces location", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PATHMARK_DB", "sqlite://env.db")

		cfg := &Config{Storage: StorageConfig{Location: "/file.db"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "sqlite://env.db", cfg.Storage.Location)
	})

	t.Run("PATHMARK_DRIVER replaces driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PATHMARK_DRIVER", "sqlite")

		cfg := &Config{Storage: StorageConfig{Driver: "sqlite3"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "sqlite", cfg.Storage.Driver)
	})

	t.Run("PATHMARK_LOG_LEVEL replaces level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PATHMARK_LOG_LEVEL", "debug")

		cfg := &Config{Logging: LoggingConfig{Level: "warn"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("empty variables leave values alone", func(t *testing.T) {
		clearEnv(t)

		cfg := &Config{
			Storage: StorageConfig{Location: "/file.db", Driver: "sqlite"},
			Logging: LoggingConfig{Level: "info"},
		}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/file.db", cfg.Storage.Location)
		assert.Equal(t, "sqlite", cfg.Storage.Driver)
		assert.Equal(t, "info", cfg.Logging.Level)
	})
}

func TestEnvOverrides_BeatFileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATHMARK_DB", "/from/env.db")

	path := filepath.Join(t.TempDir(), ConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  location: /from/file.db\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Storage.Location)
}

func TestEnvOverrides_AppliedWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATHMARK_DRIVER", "pure")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "pure", cfg.Storage.Driver)
}

func TestEnvOverrides_InvalidValueFailsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATHMARK_LOG_LEVEL", "chatty")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
