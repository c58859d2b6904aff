package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cafeteria-service", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "test-key", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, "cafeteria_session", cfg.Auth.SessionCookieName)
	assert.False(t, cfg.Auth.SecureCookies)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-key")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_SESSION_COOKIE_NAME", "sid")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, "sid", cfg.Auth.SessionCookieName)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestSessionTTLFallback(t *testing.T) {
	assert.Equal(t, 30*time.Minute, AuthConfig{SessionTTLMinutes: 30}.SessionTTL())
	assert.Equal(t, 12*time.Hour, AuthConfig{}.SessionTTL())
}
