// Package market fetches intraday quote data from the Alpha Vantage API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// QuoteFetcher is the contract the proxy handler depends on.
type QuoteFetcher interface {
	IntradayQuote(ctx context.Context, symbol string) (map[string]interface{}, error)
}

// StatusError reports a non-200 response from the upstream provider.
// The upstream status is surfaced so callers can echo it in the
// response envelope.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected upstream status %d", e.Code)
}

// Client queries the Alpha Vantage quote endpoint. The injected
// http.Client must carry a finite timeout; the Client itself adds none.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ QuoteFetcher = (*Client)(nil)

// NewClient creates a new Alpha Vantage client.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}
}

// IntradayQuote fetches the 5-minute intraday series for a symbol and
// returns the provider payload as parsed, without reshaping it. A
// non-200 upstream answer is returned as *StatusError; network,
// timeout, and decode failures are returned as plain errors.
func (c *Client) IntradayQuote(ctx context.Context, symbol string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", "5min")
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return data, nil
}
