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
http_port = 8085

[database]
host = "db"
port = 5433
user = "scheduler"
password = "secret"
dbname = "scheduling"

[logs]
level = "debug"

[kafka]
enabled = true
brokers = ["kafka:9092"]

[scheduling]
default_days = 5
max_days = 14
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout, "default kept")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Scheduling.DefaultDays)
	assert.Equal(t, 14, cfg.Scheduling.MaxDays)
	assert.Equal(t, 3, cfg.Scheduling.AllServicesDays)
	assert.Equal(t, 60, cfg.Scheduling.DefaultDurationMinutes)
	assert.Equal(t, "host=db port=5433 user=scheduler password=secret dbname=scheduling sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverridesPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "db"
dbname = "scheduling"

[kafka]
enabled = true
`))
	assert.ErrorContains(t, err, "kafka.brokers")

	_, err = Load(writeConfig(t, `
[database]
host = "db"
dbname = "scheduling"

[scheduling]
default_days = 40
`))
	assert.ErrorContains(t, err, "default_days")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
