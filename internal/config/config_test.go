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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // config/config.yaml отсутствует
	t.Setenv("CONFIG_PATH", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "batepapo-uol-api", cfg.Database.Name)
	assert.Equal(t, 15*time.Second, cfg.Chat.SweepInterval)
	assert.Equal(t, 10*time.Second, cfg.Chat.InactivityThreshold)
	assert.False(t, cfg.Chat.LegacyMessageVisibility)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 6000
  env: development
database:
  driver: badger
  in_memory: true
chat:
  sweep_interval: 30s
  inactivity_threshold: 20s
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("INACTIVITY_THRESHOLD", "5s")
	t.Setenv("LEGACY_MESSAGE_VISIBILITY", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, DriverBadger, cfg.Database.Driver)
	assert.True(t, cfg.Database.InMemory)
	assert.Equal(t, 30*time.Second, cfg.Chat.SweepInterval)
	assert.Equal(t, 5*time.Second, cfg.Chat.InactivityThreshold)
	assert.True(t, cfg.Chat.LegacyMessageVisibility)
	assert.Equal(t, ":7000", cfg.Address())
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "server:\n  port: 5000\n"))
	t.Setenv("SWEEP_INTERVAL", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown driver", func(cfg *Config) { cfg.Database.Driver = "oracle" }, true},
		{"postgres without url", func(cfg *Config) {
			cfg.Database.Driver = DriverPostgres
			cfg.Database.DSN = ""
		}, true},
		{"badger on disk without path", func(cfg *Config) {
			cfg.Database.Driver = DriverBadger
			cfg.Database.BadgerPath = ""
		}, true},
		{"badger in memory", func(cfg *Config) {
			cfg.Database.Driver = DriverBadger
			cfg.Database.BadgerPath = ""
			cfg.Database.InMemory = true
		}, false},
		{"sqlite with path", func(cfg *Config) {
			cfg.Database.Driver = DriverSQLite
			cfg.Database.DSN = "chat.db"
		}, false},
		{"sqlite without path", func(cfg *Config) {
			cfg.Database.Driver = DriverSQLite
			cfg.Database.DSN = ""
		}, true},
		{"zero threshold", func(cfg *Config) { cfg.Chat.InactivityThreshold = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
