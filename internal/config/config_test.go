package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
port = 5432
user = "scheduling"
password = "secret"
dbname = "scheduling"

[availability]
default_duration = 45
window_start = "09:00"
window_end = "17:30"

[lock]
redis_addr = "redis:6379"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 45, cfg.Availability.DefaultDuration)
	assert.Equal(t, 15, cfg.Availability.DefaultBuffer)
	assert.Equal(t, "09:00", cfg.Availability.WindowStart.String())
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.Equal(t, "redis:6379", cfg.Lock.RedisAddr)
	assert.Equal(t, "host=db port=5432 user=scheduling password=secret dbname=scheduling sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "override-host")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "override-host", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	// поля без переменных окружения остаются из файла
	assert.Equal(t, "redis:6379", cfg.Lock.RedisAddr)
	assert.Equal(t, 45, cfg.Availability.DefaultDuration)
}

func TestLoad_EnvOverrideNested(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", cfg.Lock.RedisAddr)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "db", cfg.Database.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrLoad)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero granularity", func(c *Config) { c.Availability.DefaultGranularity = 0 }},
		{"negative buffer", func(c *Config) { c.Availability.DefaultBuffer = -1 }},
		{"reversed window", func(c *Config) { c.Availability.WindowStart, c.Availability.WindowEnd = "18:00", "08:00" }},
		{"bad window", func(c *Config) { c.Availability.WindowEnd = "24:61" }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	assert.NoError(t, defaults().Validate())
}
