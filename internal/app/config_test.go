package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, 100, cfg.Server.RateLimit.Requests)
	require.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.JWT.SessionTTL)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.JWT.InviteTTL)
	require.False(t, cfg.Cache.Redis.Enabled)
	require.False(t, cfg.Email.SMTP.Enabled)
	require.Equal(t, 90, cfg.Maintenance.AuditRetentionDays)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("QUILL_SERVER_PORT", "9100")
	t.Setenv("QUILL_DATABASE_DRIVER", "postgres")
	t.Setenv("QUILL_AUTH_JWT_SECRET", "from-env")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "from-env", cfg.Auth.JWT.Secret)
}

func TestDatabaseSettingsMapsDriverFields(t *testing.T) {
	cfg := DatabaseConfig{
		Driver: "postgres",
		Postgres: DBAuthConfig{
			Host:     "db.internal",
			Port:     5433,
			Database: "quill",
			Username: "quill",
			Password: "secret",
		},
	}

	settings := cfg.DatabaseSettings()
	require.Equal(t, "postgres", settings.Driver)
	require.Equal(t, "db.internal", settings.Host)
	require.Equal(t, 5433, settings.Port)
	require.Equal(t, "quill", settings.Name)

	sqlite := DatabaseConfig{Driver: "sqlite", Path: "./data/quill.sqlite"}
	require.Equal(t, "./data/quill.sqlite", sqlite.DatabaseSettings().Path)
}

func TestApplyRuntimeDefaultsGeneratesSecret(t *testing.T) {
	cfg := &Config{}
	generated, err := ApplyRuntimeDefaults(cfg)
	require.NoError(t, err)
	require.True(t, generated["auth.jwt.secret"])
	require.NotEmpty(t, cfg.Auth.JWT.Secret)

	again, err := ApplyRuntimeDefaults(cfg)
	require.NoError(t, err)
	require.Empty(t, again)
}
