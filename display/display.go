package display

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/crypto-anomaly/api-check/types"
)

// printer applies English digit grouping so monetary values render as
// the report expects ($50,000.50).
var printer = message.NewPrinter(language.English)

const timeLayout = "2006-01-02 15:04:05"

// Money renders a monetary value with thousands separators and two
// decimal places.
func Money(v decimal.Decimal) string {
	return printer.Sprintf("%.2f", v.InexactFloat64())
}

// Title upper-cases the first letter of an asset id for display
// ("bitcoin" -> "Bitcoin").
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// MarketTable writes snapshot rows as a table with the five report
// columns and no index column, in the order given.
func MarketTable(w io.Writer, coins []types.CoinMarket) {
	table := newTable(w, []string{"name", "symbol", "current_price", "market_cap", "total_volume"})
	for _, c := range coins {
		table.Append([]string{
			c.Name,
			c.Symbol,
			Money(c.CurrentPrice),
			Money(c.MarketCap),
			Money(c.TotalVolume),
		})
	}
	table.Render()
}

// HistoryTable writes (timestamp, price) rows, timestamps already
// converted from millisecond epochs to calendar form.
func HistoryTable(w io.Writer, points []types.PricePoint) {
	table := newTable(w, []string{"date", "price"})
	for _, p := range points {
		table.Append([]string{p.Timestamp.Format(timeLayout), Money(p.Price)})
	}
	table.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}

// Head returns the first n points, or all of them when fewer exist.
func Head(points []types.PricePoint, n int) []types.PricePoint {
	if len(points) < n {
		n = len(points)
	}
	return points[:n]
}

// Tail returns the last n points, or all of them when fewer exist.
func Tail(points []types.PricePoint, n int) []types.PricePoint {
	if len(points) < n {
		return points
	}
	return points[len(points)-n:]
}

// SeriesSummary digests a price series into a one-line
// min/max/mean/stddev string, a cheap shape check on historical data.
func SeriesSummary(points []types.PricePoint) string {
	if len(points) == 0 {
		return "no data points"
	}
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price.InexactFloat64()
	}
	mean, std := stat.MeanStdDev(prices, nil)
	if len(prices) == 1 {
		// sample stddev is undefined for a single point
		std = 0
	}
	return fmt.Sprintf("min=%s max=%s mean=%s stddev=%s",
		printer.Sprintf("%.2f", floats.Min(prices)),
		printer.Sprintf("%.2f", floats.Max(prices)),
		printer.Sprintf("%.2f", mean),
		printer.Sprintf("%.2f", std))
}
