package types

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote maps an asset id to a map of currency code -> price,
// mirroring the /simple/price response shape.
type PriceQuote map[string]map[string]decimal.Decimal

// CoinMarket is one row of the /coins/markets listing. Only the fields
// the report prints are decoded.
type CoinMarket struct {
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MarketCap    decimal.Decimal `json:"market_cap"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
}

// MarketChart is the /coins/{id}/market_chart response, chronological
// as returned by the API.
type MarketChart struct {
	Prices []PricePoint `json:"prices"`
}

// PricePoint is a single (timestamp, price) sample. The API encodes it
// as a two-element [timestamp_ms, price] array.
type PricePoint struct {
	Timestamp time.Time
	Price     decimal.Decimal
}

// UnmarshalJSON decodes the [timestamp_ms, price] array form.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var raw [2]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ms, err := raw[0].Float64()
	if err != nil {
		return err
	}
	price, err := decimal.NewFromString(raw[1].String())
	if err != nil {
		return err
	}
	p.Timestamp = time.UnixMilli(int64(ms)).UTC()
	p.Price = price
	return nil
}

// Ping is the /ping liveness acknowledgment.
type Ping struct {
	GeckoSays string `json:"gecko_says"`
}
