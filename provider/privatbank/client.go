package privatbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sig-0/pbrates/provider/currencies"
	"github.com/sig-0/pbrates/storage/types"
)

// maxBodySize caps the response body read per day
const maxBodySize = 1 << 20

// DefaultTimeout is the default per-request timeout
const DefaultTimeout = 10 * time.Second

// Client is the PrivatBank archive rates provider
type Client struct {
	client   *http.Client
	logger   *slog.Logger
	reporter Reporter
	baseURL  string
}

// NewClient creates a new instance of the PrivatBank provider
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.reporter == nil {
		c.reporter = NewLogReporter(c.logger)
	}

	return c
}

func (c *Client) Name() string {
	return "PrivatBank"
}

// URLs returns the request URLs for the trailing days, today first
func (c *Client) URLs(now time.Time, days int) []string {
	return DayURLs(c.baseURL, now, days)
}

// FetchDay fetches and parses the rates behind a single day URL
func (c *Client) FetchDay(ctx context.Context, url string) *types.DayResult {
	body, status, err := c.get(ctx, url)
	if err != nil {
		c.reporter.Report(ctx, Diagnostic{
			URL: url,
			Err: err,
		})

		return types.Failed()
	}

	if status != http.StatusOK {
		c.reporter.Report(ctx, Diagnostic{
			URL:        url,
			StatusCode: status,
			Err:        fmt.Errorf("invalid status code received: %d", status),
		})

		return types.Failed()
	}

	if isEmptyBody(body) {
		c.logger.Debug("no rates published", "url", url)

		return types.NotFound()
	}

	var resp dayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.reporter.Report(ctx, Diagnostic{
			URL: url,
			Err: fmt.Errorf("unable to decode response: %w", err),
		})

		return types.Failed()
	}

	if resp.Date == "" {
		return types.NotFound()
	}

	rates := make(types.Rates, len(currencies.Tracked()))

	for _, code := range currencies.Tracked() {
		found, ok := ExtractRate(code, resp.ExchangeRate)
		if !ok {
			c.logger.Debug(
				"currency missing from response",
				"currency", code,
				"date", resp.Date,
			)

			continue
		}

		for k, v := range found {
			rates[k] = v
		}
	}

	return types.Found(resp.Date, rates)
}

// get executes the GET request, returning the (bounded) body and status code
func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	// Prepare the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to create new GET request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	// Execute the request
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, fmt.Errorf("unable to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// isEmptyBody checks if the body carries no data (empty, null, {} or [])
func isEmptyBody(body []byte) bool {
	switch string(bytes.TrimSpace(body)) {
	case "", "null", "{}", "[]":
		return true
	default:
		return false
	}
}
