package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "admin-auth", cfg.TokenIssuer)
	assert.True(t, cfg.CookieSecure)
	assert.Empty(t, cfg.AllowedOrigins)

	// Secret is generated when missing
	assert.True(t, cfg.JWTSecretGenerated)
	assert.Len(t, cfg.JWTSecret, MinJWTSecretLength)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/admins.db")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, http://localhost:3000,")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/admins.db", cfg.SQLitePath)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWTSecret)
	assert.False(t, cfg.JWTSecretGenerated)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://admin.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7070\nlog_format: pretty\ntoken_issuer: backoffice\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "backoffice", cfg.TokenIssuer)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := Load(viper.New())
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "0s")

	_, err := Load(viper.New())
	assert.Error(t, err)
}
