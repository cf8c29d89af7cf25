package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crypto-anomaly/api-check/types"
)

const (
	// DefaultBaseURL is the public CoinGecko v3 REST endpoint.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// demoKeyHeader carries the optional demo-tier API key.
	demoKeyHeader = "x-cg-demo-api-key"

	defaultTimeout = 15 * time.Second
)

// Client is a read-only client for the CoinGecko market-data API.
// Nothing mutates it after construction, so a single instance can be
// shared across checks without locking.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL. An empty baseURL
// falls back to the public API; apiKey is optional.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// get issues a GET against path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	logrus.Debugf("GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(demoKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s",
			resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// SimplePrice returns current prices for the given asset ids quoted in
// the given currencies.
func (c *Client) SimplePrice(ctx context.Context, ids, currencies []string) (types.PriceQuote, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", strings.Join(currencies, ","))

	var quote types.PriceQuote
	if err := c.get(ctx, "/simple/price", query, &quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// CoinsMarkets returns one page of assets ranked by the given order
// (market_cap_desc for the smoke test). Rows come back in the API's
// ranking; callers rely on that order and must not re-sort.
func (c *Client) CoinsMarkets(ctx context.Context, currency string, perPage, page int, order string) ([]types.CoinMarket, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))
	query.Set("order", order)

	var coins []types.CoinMarket
	if err := c.get(ctx, "/coins/markets", query, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// MarketChart returns the last `days` days of price history for one
// asset, chronological as returned by the API.
func (c *Client) MarketChart(ctx context.Context, id, currency string, days int) (*types.MarketChart, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("days", strconv.Itoa(days))

	var chart types.MarketChart
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", query, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// Ping probes API liveness.
func (c *Client) Ping(ctx context.Context) (*types.Ping, error) {
	var ping types.Ping
	if err := c.get(ctx, "/ping", nil, &ping); err != nil {
		return nil, err
	}
	return &ping, nil
}
