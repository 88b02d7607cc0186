package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("TASKNEST_AUTH_JWT_ACCESS_SECRET", "access-secret-for-tests")
	t.Setenv("TASKNEST_AUTH_JWT_REFRESH_SECRET", "refresh-secret-for-tests")
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load("default")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 12, cfg.Auth.Password.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWT.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.JWT.RefreshTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.JWT.RememberTTL())
	assert.Equal(t, "/api/v1/auth", cfg.Auth.Cookie.Path)
	assert.Equal(t, SessionStoreGorm, cfg.Session.Store)
	assert.Equal(t, time.Hour, cfg.Session.PurgeInterval)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 10, cfg.Todolists.MaxPerUser)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setSecrets(t)
	t.Setenv("TASKNEST_SESSION_STORE", "redis")
	t.Setenv("TASKNEST_SESSION_PURGE_INTERVAL", "15m")
	t.Setenv("TASKNEST_SERVER_API_KEYS", "key-one,key-two")
	t.Setenv("TASKNEST_TODOLISTS_MAX_PER_USER", "3")

	cfg, err := Load("production")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Server.Mode)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 15*time.Minute, cfg.Session.PurgeInterval)
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.Server.APIKeys)
	assert.Equal(t, 3, cfg.Todolists.MaxPerUser)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing secrets",
			env:  map[string]string{},
		},
		{
			name: "identical secrets",
			env: map[string]string{
				"TASKNEST_AUTH_JWT_ACCESS_SECRET":  "same",
				"TASKNEST_AUTH_JWT_REFRESH_SECRET": "same",
			},
		},
		{
			name: "unknown session store",
			env: map[string]string{
				"TASKNEST_AUTH_JWT_ACCESS_SECRET":  "a",
				"TASKNEST_AUTH_JWT_REFRESH_SECRET": "b",
				"TASKNEST_SESSION_STORE":           "memcached",
			},
		},
		{
			name: "unknown database driver",
			env: map[string]string{
				"TASKNEST_AUTH_JWT_ACCESS_SECRET":  "a",
				"TASKNEST_AUTH_JWT_REFRESH_SECRET": "b",
				"TASKNEST_DATABASE_DRIVER":         "oracle",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("test")
			assert.Error(t, err)
		})
	}
}
