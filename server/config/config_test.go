package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/pbrates/provider/privatbank"
)

func TestConfig_ValidateConfig(t *testing.T) {
	t.Parallel()

	t.Run("invalid listen address", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.ListenAddress = "rando-address" // doesn't follow the format

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidListenAddress)
	})

	t.Run("empty base URL", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Fetch.BaseURL = ""

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidBaseURL)
	})

	t.Run("relative base URL", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Fetch.BaseURL = "/p24api/exchange_rates"

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidBaseURL)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		for _, timeout := range []string{"", "soon", "0s", "-1s"} {
			cfg := DefaultConfig()
			cfg.Fetch.Timeout = timeout

			assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidTimeout, timeout)
		}
	})

	t.Run("valid configuration", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateConfig(DefaultConfig()))
	})
}

func TestConfig_Read(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Read(filepath.Join(t.TempDir(), "missing.toml"))

		assert.Error(t, err)
	})

	t.Run("partial file falls back to defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
listen_address = "127.0.0.1:9000"

[fetch]
timeout = "3s"
`

		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
		assert.Equal(t, privatbank.DefaultBaseURL, cfg.Fetch.BaseURL)

		timeout, err := cfg.Fetch.TimeoutDuration()
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, timeout)

		assert.NoError(t, ValidateConfig(cfg))
	})
}
