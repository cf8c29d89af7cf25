package smoketest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crypto-anomaly/api-check/coingecko"
	"github.com/crypto-anomaly/api-check/display"
)

const bannerWidth = 50

// Config holds the knobs for a run. Zero values are filled in by
// NewRunner with the defaults the diagnostic has always used.
type Config struct {
	Coin     string // asset id, e.g. "bitcoin"
	Currency string // quote currency, e.g. "usd"
	Days     int    // history window in days
	PerPage  int    // snapshot page size
	Page     int    // snapshot page number
}

// Runner executes four connectivity checks against the CoinGecko API
// in a fixed order and reports to Out. The client handle is read-only;
// the checks share no other state.
type Runner struct {
	client *coingecko.Client
	cfg    Config
	out    io.Writer
}

// NewRunner creates a runner writing its report to out.
func NewRunner(client *coingecko.Client, cfg Config, out io.Writer) *Runner {
	if cfg.Coin == "" {
		cfg.Coin = "bitcoin"
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	if cfg.Page <= 0 {
		cfg.Page = 1
	}
	return &Runner{client: client, cfg: cfg, out: out}
}

// Run executes price -> snapshot -> history -> health. Checks 1-3
// short-circuit the run on failure; the health check reports its own
// failure and never aborts, so a dead ping cannot hide the results
// already gathered above. Returns false when the run was aborted.
func (r *Runner) Run(ctx context.Context) bool {
	fmt.Fprintln(r.out, "\n CRYPTO ANOMALY DETECTION PROJECT")
	fmt.Fprintf(r.out, "Test started at: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	checks := []func(context.Context) error{
		r.checkCurrentPrice,
		r.checkMarketSnapshot,
		r.checkHistoricalSeries,
	}
	for _, check := range checks {
		if err := check(ctx); err != nil {
			fmt.Fprintf(r.out, "\nError occurred: %v\n", err)
			fmt.Fprintln(r.out, "Tip: Check your internet connection and try again")
			return false
		}
	}
	r.checkAPIHealth(ctx)

	r.banner("ALL TEST PASSED!")
	return true
}

func (r *Runner) banner(title string) {
	line := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.out, line)
	fmt.Fprintln(r.out, title)
	fmt.Fprintln(r.out, line)
}

func (r *Runner) checkCurrentPrice(ctx context.Context) error {
	r.banner(fmt.Sprintf("TEST 1: Fetching %s current price", display.Title(r.cfg.Coin)))

	quote, err := r.client.SimplePrice(ctx, []string{r.cfg.Coin}, []string{r.cfg.Currency})
	if err != nil {
		return err
	}
	price, ok := quote[r.cfg.Coin][r.cfg.Currency]
	if !ok {
		return fmt.Errorf("no %s price for %s in response", r.cfg.Currency, r.cfg.Coin)
	}

	fmt.Fprintf(r.out, "%s price: $%s\n\n", display.Title(r.cfg.Coin), display.Money(price))
	return nil
}

func (r *Runner) checkMarketSnapshot(ctx context.Context) error {
	r.banner(fmt.Sprintf("TEST 2: Fetching Top %d coins", r.cfg.PerPage))

	coins, err := r.client.CoinsMarkets(ctx, r.cfg.Currency, r.cfg.PerPage, r.cfg.Page, "market_cap_desc")
	if err != nil {
		return err
	}

	// Rows print in API order; the market_cap_desc ranking is the
	// API's guarantee, never re-derived here.
	display.MarketTable(r.out, coins)
	fmt.Fprintf(r.out, "\n Successfully fetched %d coins\n\n", len(coins))
	return nil
}

func (r *Runner) checkHistoricalSeries(ctx context.Context) error {
	r.banner(fmt.Sprintf("TEST 3: Fetching %s %d-day history", display.Title(r.cfg.Coin), r.cfg.Days))

	chart, err := r.client.MarketChart(ctx, r.cfg.Coin, r.cfg.Currency, r.cfg.Days)
	if err != nil {
		return err
	}

	// Chronological order is the API's; head/tail degrade gracefully
	// when fewer than 5 points come back.
	points := chart.Prices
	fmt.Fprintf(r.out, "Fetched %d data points\n", len(points))
	fmt.Fprintln(r.out, "\nFirst 5 records:")
	display.HistoryTable(r.out, display.Head(points, 5))
	fmt.Fprintln(r.out, "\nLast 5 records:")
	display.HistoryTable(r.out, display.Tail(points, 5))
	fmt.Fprintf(r.out, "\nSeries summary: %s\n\n", display.SeriesSummary(points))
	return nil
}

// checkAPIHealth deviates from the other checks on purpose: it catches
// its own failure so the run can finish and report what it gathered.
func (r *Runner) checkAPIHealth(ctx context.Context) {
	r.banner("TEST 4: Checking CoinGecko API status")

	ping, err := r.client.Ping(ctx)
	if err != nil {
		logrus.Warnf("ping failed: %v", err)
		fmt.Fprintf(r.out, "API Error: %v\n\n", err)
		return
	}

	fmt.Fprintf(r.out, "API Status: %s\n", ping.GeckoSays)
	fmt.Fprintln(r.out, "CoinGecko API is working perfectly!")
	fmt.Fprintln(r.out)
}
