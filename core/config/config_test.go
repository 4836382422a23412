package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylelaverty/FastEndpoints/core/config"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults when variables are unset", func(t *testing.T) {
		type defaultsConfig struct {
			BufferSize int           `env:"TEST_DEFAULTS_BUFFER" envDefault:"100"`
			Workers    int           `env:"TEST_DEFAULTS_WORKERS" envDefault:"1"`
			Shutdown   time.Duration `env:"TEST_DEFAULTS_SHUTDOWN" envDefault:"30s"`
		}

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 100, cfg.BufferSize)
		assert.Equal(t, 1, cfg.Workers)
		assert.Equal(t, 30*time.Second, cfg.Shutdown)
	})

	t.Run("reads values from the environment", func(t *testing.T) {
		type envConfig struct {
			BufferSize int `env:"TEST_ENV_BUFFER" envDefault:"100"`
		}

		t.Setenv("TEST_ENV_BUFFER", "42")

		var cfg envConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 42, cfg.BufferSize)
	})

	t.Run("caches the first load per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CACHED_VALUE" envDefault:"initial"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		require.Equal(t, "initial", first.Value)

		// Environment changes after the first load are not observed.
		t.Setenv("TEST_CACHED_VALUE", "changed")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "initial", second.Value)
	})

	t.Run("fails on required variables that are missing", func(t *testing.T) {
		type requiredConfig struct {
			Token string `env:"TEST_REQUIRED_TOKEN,required"`
		}

		var cfg requiredConfig
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("rejects nil target", func(t *testing.T) {
		assert.Error(t, config.Load[struct{}](nil))
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type mustConfig struct {
			Token string `env:"TEST_MUST_TOKEN,required"`
		}

		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("loads valid configuration", func(t *testing.T) {
		type okConfig struct {
			Port int `env:"TEST_MUST_PORT" envDefault:"8080"`
		}

		var cfg okConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, 8080, cfg.Port)
	})
}
