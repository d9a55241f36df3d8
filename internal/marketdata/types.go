package marketdata

import "errors"

var (
	// ErrNoData is returned when the provider answers but has no price for the symbol.
	ErrNoData = errors.New("no price data returned")
	// ErrThrottled is returned when the provider reports its request quota is exhausted.
	ErrThrottled = errors.New("provider rate limit reached")
)

// GlobalQuoteResponse represents the AlphaVantage GLOBAL_QUOTE response
type GlobalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		LatestTrading string `json:"07. latest trading day"`
	} `json:"Global Quote"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

// ExchangeRateResponse represents the AlphaVantage CURRENCY_EXCHANGE_RATE response
type ExchangeRateResponse struct {
	Rate struct {
		From string `json:"1. From_Currency Code"`
		To   string `json:"3. To_Currency Code"`
		Rate string `json:"5. Exchange Rate"`
	} `json:"Realtime Currency Exchange Rate"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

// ParsedQuote represents a parsed quote ready for use
type ParsedQuote struct {
	Symbol string
	Price  float64
}
