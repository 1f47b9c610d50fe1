package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{envEnvironmentKey, envDebugKey, envLogLevelKey, envServerPortKey,
		envDBPathKey, envJWTSecretKey, envJWTExpireHoursKey, envFrontendURLKey} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "data/ecometrics.db", cfg.DBPath)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Contains(t, cfg.Warnings(), "JWT_SECRET_KEY is using default value - change this in production")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv(envEnvironmentKey, "production")
	t.Setenv(envDebugKey, "TRUE")
	t.Setenv(envLogLevelKey, "debug")
	t.Setenv(envServerPortKey, "8081")
	t.Setenv(envDBPathKey, "/tmp/eco.db")
	t.Setenv(envJWTSecretKey, "s3cret")
	t.Setenv(envJWTExpireHoursKey, "2")
	t.Setenv(envFrontendURLKey, "https://eco.example.com")

	cfg := LoadConfig()
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "/tmp/eco.db", cfg.DBPath)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)

	warnings := cfg.Warnings()
	assert.Contains(t, warnings, "DEBUG is enabled in production environment")
	assert.Contains(t, warnings, "LOG_LEVEL is set to DEBUG in production environment")
	assert.NotContains(t, warnings, "JWT_SECRET_KEY is using default value - change this in production")
}

func TestLoadConfigInvalidExpiryFallsBack(t *testing.T) {
	t.Setenv(envJWTExpireHoursKey, "-3")
	assert.Equal(t, 24*time.Hour, LoadConfig().JWTExpiry)

	t.Setenv(envJWTExpireHoursKey, "soon")
	assert.Equal(t, 24*time.Hour, LoadConfig().JWTExpiry)
}

func TestInfoMasksSecret(t *testing.T) {
	cfg := &Configuration{JWTSecret: "top-secret", JWTExpiry: 24 * time.Hour, DBPath: "x.db"}
	info := cfg.Info()

	jwtInfo, ok := info["jwt"].(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, true, jwtInfo["secretSet"])
		assert.Equal(t, 24, jwtInfo["expireHours"])
	}
	assert.NotContains(t, info, "jwtSecret")
	for _, v := range jwtInfo {
		assert.NotEqual(t, "top-secret", v)
	}
}
