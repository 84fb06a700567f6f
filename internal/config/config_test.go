package config_test

import (
	"testing"

	"github.com/nais/usersync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.New(nil)
		require.NoError(t, err)
		assert.Equal(t, "https://67dd047ae00db03c4069ce49.mockapi.io/Users", cfg.Endpoint.URL)
		assert.Equal(t, "text", cfg.Logger.Format)
		assert.Equal(t, "warning", cfg.Logger.Level)
		assert.Empty(t, cfg.MetricsAddress)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("USERS_ENDPOINT", "http://some/endpoint")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("METRICS_ADDRESS", ":9090")
		cfg, err := config.New(nil)
		require.NoError(t, err)
		assert.Equal(t, "http://some/endpoint", cfg.Endpoint.URL)
		assert.Equal(t, "json", cfg.Logger.Format)
		assert.Equal(t, ":9090", cfg.MetricsAddress)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("USERS_ENDPOINT", "http://some/endpoint")
		cfg, err := config.New([]string{"--endpoint", "http://other/endpoint", "--log-level", "debug"})
		require.NoError(t, err)
		assert.Equal(t, "http://other/endpoint", cfg.Endpoint.URL)
		assert.Equal(t, "debug", cfg.Logger.Level)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := config.New([]string{"--no-such-flag"})
		assert.Error(t, err)
	})
}
