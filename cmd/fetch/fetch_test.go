package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/pbrates/ingest"
	"github.com/sig-0/pbrates/server/config"
)

// newCountingServer starts an API stub counting the received requests
func newCountingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)

		w.WriteHeader(status)

		_, _ = w.Write([]byte(body))
	}))

	t.Cleanup(srv.Close)

	return srv, &hits
}

// newTestCfg creates a fetch configuration pointing at the given URL
func newTestCfg(url string, out io.Writer) *fetchCfg {
	cfg := &fetchCfg{
		config: config.DefaultFetchConfig(),
		out:    out,
		logOut: io.Discard,
	}

	cfg.config.BaseURL = url

	return cfg
}

func TestFetch_Exec(t *testing.T) {
	t.Parallel()

	t.Run("invalid days", func(t *testing.T) {
		t.Parallel()

		for _, days := range []string{"0", "11", "abc", "-1"} {
			var (
				out       bytes.Buffer
				srv, hits = newCountingServer(t, http.StatusOK, "")
				cfg       = newTestCfg(srv.URL, &out)
			)

			err := cfg.exec(context.Background(), []string{days})

			assert.ErrorIs(t, err, ingest.ErrInvalidDays, days)
			assert.Zero(t, hits.Load(), days)
			assert.Empty(t, out.String(), days)
		}
	})

	t.Run("default single day", func(t *testing.T) {
		t.Parallel()

		var (
			out       bytes.Buffer
			srv, hits = newCountingServer(t, http.StatusOK, "")
			cfg       = newTestCfg(srv.URL, &out)
		)

		require.NoError(t, cfg.exec(context.Background(), nil))

		assert.Equal(t, int32(1), hits.Load())
		assert.Equal(t, "[\n    \"Not found\"\n]\n", out.String())
	})

	t.Run("rendered rates", func(t *testing.T) {
		t.Parallel()

		body := `{"date":"10.01.2024","exchangeRate":[` +
			`{"currency":"EUR","saleRate":"40.0","purchaseRate":"39.5"},` +
			`{"currency":"USD","saleRate":"37.0","purchaseRate":"36.5"}]}`

		var (
			out       bytes.Buffer
			srv, hits = newCountingServer(t, http.StatusOK, body)
			cfg       = newTestCfg(srv.URL, &out)
		)

		require.NoError(t, cfg.exec(context.Background(), []string{"2"}))

		assert.Equal(t, int32(2), hits.Load())
		assert.JSONEq(
			t,
			`[
				{"10.01.2024": {"EUR": {"purchase": "39.5", "sale": "40.0"}, "USD": {"purchase": "36.5", "sale": "37.0"}}},
				{"10.01.2024": {"EUR": {"purchase": "39.5", "sale": "40.0"}, "USD": {"purchase": "36.5", "sale": "37.0"}}}
			]`,
			out.String(),
		)
	})

	t.Run("failed days render as null", func(t *testing.T) {
		t.Parallel()

		var (
			out    bytes.Buffer
			srv, _ = newCountingServer(t, http.StatusInternalServerError, "")
			cfg    = newTestCfg(srv.URL, &out)
		)

		require.NoError(t, cfg.exec(context.Background(), []string{"3"}))

		assert.JSONEq(t, `[null, null, null]`, out.String())
	})

	t.Run("invalid configuration", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer

		cfg := newTestCfg("http://127.0.0.1:1", &out)
		cfg.config.Timeout = "never"

		assert.ErrorIs(t, cfg.exec(context.Background(), []string{"1"}), config.ErrInvalidTimeout)
	})

	t.Run("configuration file", func(t *testing.T) {
		t.Parallel()

		var (
			out       bytes.Buffer
			srv, hits = newCountingServer(t, http.StatusOK, "null")
			cfg       = newTestCfg("http://127.0.0.1:1", &out)
			path      = filepath.Join(t.TempDir(), "config.toml")
		)

		content := "[fetch]\nbase_url = \"" + srv.URL + "\"\ntimeout = \"2s\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg.configPath = path

		require.NoError(t, cfg.exec(context.Background(), []string{"1"}))

		assert.Equal(t, int32(1), hits.Load())
		assert.JSONEq(t, `["Not found"]`, out.String())
	})
}

func TestNewFetchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFetchCmd()

	require.NotNil(t, cmd)
	assert.Equal(t, "fetch", cmd.Name)

	for _, name := range []string{"base-url", "timeout", "config", "verbose"} {
		assert.NotNil(t, cmd.FlagSet.Lookup(name), name)
	}
}
