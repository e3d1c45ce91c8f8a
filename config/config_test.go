package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv hides deployment variables of the host running the tests
func clearEnv(t *testing.T) {
	for _, env := range envAliases {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaults(), cfg)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costconsole.yaml")
	content := `
server:
  port: "9090"
  read_timeout: 5s
database:
  driver: pgx
  dsn: postgres://localhost/costconsole
cors:
  allowed_origins:
    - https://console.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, []string{"https://console.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)

	t.Run("Prefixed variables", func(t *testing.T) {
		t.Setenv("COSTCONSOLE_SERVER_PORT", "7070")
		t.Setenv("COSTCONSOLE_SCHEDULER_SUMMARY_INTERVAL", "10m")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, 10*time.Minute, cfg.Scheduler.SummaryInterval)
	})

	t.Run("Bare aliases", func(t *testing.T) {
		t.Setenv("PORT", "6060")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "6060", cfg.Server.Port)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("Prefixed wins over alias", func(t *testing.T) {
		t.Setenv("PORT", "6060")
		t.Setenv("COSTCONSOLE_SERVER_PORT", "7070")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Server.Port)
	})
}

func TestValidate(t *testing.T) {
	cfg := GetDefaults()
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = GetDefaults()
	cfg.Env = "production"
	assert.Error(t, cfg.Validate())

	cfg.Encryption.Key = "secret"
	assert.NoError(t, cfg.Validate())
}
