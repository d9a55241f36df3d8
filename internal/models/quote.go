package models

import "time"

// QuoteSource identifies where a price came from.
type QuoteSource string

const (
	SourceAlphaVantage QuoteSource = "alphavantage"
	SourceYahoo        QuoteSource = "yahoo"
	SourceBizportal    QuoteSource = "bizportal"
)

// Quote represents the latest known price for a lookup symbol, in the
// holding's native currency unit.
type Quote struct {
	Symbol    string      `json:"symbol"`
	Price     float64     `json:"price"`
	Source    QuoteSource `json:"source"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// FXPairUSDILS is the only exchange rate the valuation needs.
const FXPairUSDILS = "USD/ILS"

// FXRate is a cached exchange rate, quote units per base unit.
type FXRate struct {
	Pair      string    `json:"pair"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}
