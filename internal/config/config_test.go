package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[database]
host = "db"
user = "salon"
password = "from-file"
dbname = "salon"

[auth]
url = "http://auth:8000"

[reservations]
backend = "redis"
ttl_minutes = 15

[booking]
slot_granularity_minutes = 15
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, ReservationBackendRedis, cfg.Reservations.Backend)
	assert.Equal(t, 15, cfg.Reservations.TTLMinutes)
	assert.Equal(t, 15, cfg.Booking.SlotGranularityMinutes)
	// Значения по умолчанию
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "host=db port=5432 user=salon password=from-env dbname=salon sslmode=disable", cfg.Database.DSN())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_URL=http://dotenv:1\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("AUTH_URL") })

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:1", cfg.Auth.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "auth url", mutate: func(c *Config) { c.Auth.URL = "" }},
		{name: "backend", mutate: func(c *Config) { c.Reservations.Backend = "memcached" }},
		{name: "ttl", mutate: func(c *Config) { c.Reservations.TTLMinutes = 0 }},
		{name: "granularity", mutate: func(c *Config) { c.Booking.SlotGranularityMinutes = -5 }},
		{name: "rate limit", mutate: func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DBName = "salon"
			cfg.Auth.URL = "http://auth"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
