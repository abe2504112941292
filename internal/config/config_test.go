package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"PRIMARY.ENV":                  "development",
		"SERVER.PORT":                  "8080",
		"SERVER.READ_TIMEOUT":          "30",
		"SERVER.WRITE_TIMEOUT":         "30",
		"SERVER.IDLE_TIMEOUT":          "60",
		"SERVER.CORS_ALLOWED_ORIGINS":  "*",
		"DATABASE.HOST":                "localhost",
		"DATABASE.PORT":                "5432",
		"DATABASE.USER":                "postgres",
		"DATABASE.PASSWORD":            "postgres",
		"DATABASE.NAME":                "photogram",
		"DATABASE.SSL_MODE":            "disable",
		"DATABASE.MAX_OPEN_CONNS":      "25",
		"DATABASE.MAX_IDLE_CONNS":      "5",
		"DATABASE.CONN_MAX_LIFETIME":   "300",
		"DATABASE.CONN_MAX_IDLE_TIME":  "60",
		"REDIS.ADDRESS":                "localhost:6379",
		"AUTH.SECRET_KEY":              "a-very-long-test-secret",
		"INTEGRATION.RESEND_API_KEY":   "re_test",
	}
	for k, v := range vars {
		t.Setenv(EnvPrefix+k, v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Contains(t, cfg.Server.CORSAllowedOrigins, "*")

	assert.Equal(t, DefaultPassportTTL, cfg.Auth.PassportTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, DefaultEmailFrom, cfg.Integration.EmailFrom)

	require.NotNil(t, cfg.RateLimit)
	assert.Equal(t, DefaultRateLimitConfig(), cfg.RateLimit)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.False(t, cfg.IsLocal())
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"AUTH.PASSPORT_TTL", "90m")
	t.Setenv(EnvPrefix+"AUTH.BCRYPT_COST", "6")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Auth.PassportTTL)
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"AUTH.SECRET_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Level = "debug"
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	cfg.Logging.Level = ""
	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestObservabilityConfig_HealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}
