package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "keep", cfg.SessionCancelPolicy)
	assert.Equal(t, 30*time.Second, cfg.SessionCacheTTL)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=booking sslmode=disable", cfg.Database().DSN())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_CANCEL_POLICY", "refund")

	cfg, err := Load([]string{"--port", "9100", "--migrate"})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "refund", cfg.SessionCancelPolicy)
	assert.True(t, cfg.Migrate)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load(nil)
		assert.Error(t, err)
	})

	t.Run("unknown cancel policy", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		_, err := Load([]string{"--session-cancel-policy", "delete"})
		assert.Error(t, err)
	})
}
