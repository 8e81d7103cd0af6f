package privatbank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/pbrates/provider/currencies"
	"github.com/sig-0/pbrates/storage/types"
)

const dayResponseBody = `{
  "date": "10.01.2024",
  "bank": "PB",
  "baseCurrency": 980,
  "baseCurrencyLit": "UAH",
  "exchangeRate": [
    {"baseCurrency": "UAH", "currency": "CHF", "saleRateNB": 44.6, "saleRate": "45.0", "purchaseRate": "44.0"},
    {"baseCurrency": "UAH", "currency": "EUR", "saleRateNB": 41.6, "saleRate": "42.3", "purchaseRate": "41.4"},
    {"baseCurrency": "UAH", "currency": "USD", "saleRateNB": 37.9, "saleRate": "38.2", "purchaseRate": "37.6"}
  ]
}`

// diagnostics collects the reported diagnostics
type diagnostics struct {
	items []Diagnostic
	mu    sync.Mutex
}

func (d *diagnostics) Report(_ context.Context, diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = append(d.items, diag)
}

func (d *diagnostics) all() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Diagnostic(nil), d.items...)
}

// newTestServer starts a server replying with the given status and body
func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)

		_, _ = w.Write([]byte(body))
	}))

	t.Cleanup(srv.Close)

	return srv
}

func TestClient_FetchDay(t *testing.T) {
	t.Parallel()

	t.Run("both currencies", func(t *testing.T) {
		t.Parallel()

		var (
			reporter = &diagnostics{}
			srv      = newTestServer(t, http.StatusOK, dayResponseBody)
			c        = NewClient(srv.URL, time.Second, WithReporter(reporter))
		)

		result := c.FetchDay(context.Background(), srv.URL+"?date=10.01.2024")

		require.NotNil(t, result)
		assert.Equal(t, types.OutcomeFound, result.Outcome)
		assert.Equal(t, "10.01.2024", result.Date)
		assert.Equal(t, types.Rates{
			currencies.EUR: {Sale: "42.3", Purchase: "41.4"},
			currencies.USD: {Sale: "38.2", Purchase: "37.6"},
		}, result.Rates)

		assert.Empty(t, reporter.all())
	})

	t.Run("single currency", func(t *testing.T) {
		t.Parallel()

		var (
			body = `{"date":"09.01.2024","exchangeRate":[` +
				`{"currency":"USD","saleRate":"38.1","purchaseRate":"37.5"}]}`
			srv = newTestServer(t, http.StatusOK, body)
			c   = NewClient(srv.URL, time.Second)
		)

		result := c.FetchDay(context.Background(), srv.URL)

		assert.Equal(t, types.OutcomeFound, result.Outcome)
		assert.Equal(t, types.Rates{
			currencies.USD: {Sale: "38.1", Purchase: "37.5"},
		}, result.Rates)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{"", "  \n", "null", "{}", "[]"} {
			var (
				reporter = &diagnostics{}
				srv      = newTestServer(t, http.StatusOK, body)
				c        = NewClient(srv.URL, time.Second, WithReporter(reporter))
			)

			result := c.FetchDay(context.Background(), srv.URL)

			assert.Equal(t, types.OutcomeNotFound, result.Outcome, body)
			assert.Empty(t, reporter.all(), body)
		}
	})

	t.Run("no date published", func(t *testing.T) {
		t.Parallel()

		var (
			srv = newTestServer(t, http.StatusOK, `{"date":"","exchangeRate":[]}`)
			c   = NewClient(srv.URL, time.Second)
		)

		assert.Equal(t, types.OutcomeNotFound, c.FetchDay(context.Background(), srv.URL).Outcome)
	})

	t.Run("not found status", func(t *testing.T) {
		t.Parallel()

		var (
			reporter = &diagnostics{}
			srv      = newTestServer(t, http.StatusNotFound, "nope")
			c        = NewClient(srv.URL, time.Second, WithReporter(reporter))
			url      = srv.URL + "?date=10.01.2024"
		)

		result := c.FetchDay(context.Background(), url)

		assert.Equal(t, types.OutcomeFailed, result.Outcome)
		assert.Empty(t, result.Date)
		assert.Nil(t, result.Rates)

		diags := reporter.all()
		require.Len(t, diags, 1)

		assert.Equal(t, http.StatusNotFound, diags[0].StatusCode)
		assert.Equal(t, url, diags[0].URL)
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL

		srv.Close() // nothing listens anymore

		var (
			reporter = &diagnostics{}
			c        = NewClient(url, time.Second, WithReporter(reporter))
		)

		result := c.FetchDay(context.Background(), url)

		assert.Equal(t, types.OutcomeFailed, result.Outcome)

		diags := reporter.all()
		require.Len(t, diags, 1)

		assert.Zero(t, diags[0].StatusCode)
		assert.Equal(t, url, diags[0].URL)
		assert.Error(t, diags[0].Err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}

			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		var (
			reporter = &diagnostics{}
			c        = NewClient(srv.URL, 50*time.Millisecond, WithReporter(reporter))
		)

		result := c.FetchDay(context.Background(), srv.URL)

		assert.Equal(t, types.OutcomeFailed, result.Outcome)
		require.Len(t, reporter.all(), 1)
	})

	t.Run("undecodable body", func(t *testing.T) {
		t.Parallel()

		var (
			reporter = &diagnostics{}
			srv      = newTestServer(t, http.StatusOK, "<html>maintenance</html>")
			c        = NewClient(srv.URL, time.Second, WithReporter(reporter))
		)

		result := c.FetchDay(context.Background(), srv.URL)

		assert.Equal(t, types.OutcomeFailed, result.Outcome)
		require.Len(t, reporter.all(), 1)
	})
}

func TestMultiReporter(t *testing.T) {
	t.Parallel()

	var (
		first  = &diagnostics{}
		second = &diagnostics{}
		calls  int

		reporter = MultiReporter{
			first,
			nil,
			second,
			ReporterFunc(func(context.Context, Diagnostic) {
				calls++
			}),
		}
	)

	reporter.Report(context.Background(), Diagnostic{URL: "http://rates"})

	assert.Len(t, first.all(), 1)
	assert.Len(t, second.all(), 1)
	assert.Equal(t, 1, calls)
}
