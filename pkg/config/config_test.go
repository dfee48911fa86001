package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lexal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
port: 8080
database_url: redis://localhost:6379/0
event_bus: kafka
log_level: debug
tracing: true
redis:
  prefix: "test:"
  ttl: 24h
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "redis://localhost:6379/0", config.DatabaseURL)
	assert.Equal(t, "kafka", config.EventBus)
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.Tracing)
	assert.Equal(t, "test:", config.Redis.Prefix)
	assert.Equal(t, 24*time.Hour, config.Redis.TTL)
	assert.Equal(t, DefaultServiceName, config.ServiceName)
}

func TestLoad_KeepsDefaults(t *testing.T) {
	config, err := Load(writeConfig(t, "log_level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, config.Port)
	assert.Equal(t, DefaultDatabaseURL, config.DatabaseURL)
	assert.Equal(t, DefaultEventBus, config.EventBus)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "port: [1"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "event_bus: rabbitmq\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "port: 70000\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
