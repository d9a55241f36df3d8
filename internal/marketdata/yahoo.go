package marketdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/epeers/networth/internal/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
	"golang.org/x/time/rate"
)

// YahooClient prices tickers, crypto pairs and FX through Yahoo Finance.
// It needs no API key. TASE listings are quoted in agorot and are converted
// to shekels.
type YahooClient struct {
	enabled bool
	limiter *rate.Limiter
	// quote returns the raw Yahoo price of a Yahoo symbol
	quote func(symbol string) (float64, error)
}

// NewYahooClient creates a client limited to requestsPerSecond.
// A disabled client reports Enabled() == false and is skipped by callers.
func NewYahooClient(enabled bool, requestsPerSecond int) *YahooClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRateLimit
	}
	return &YahooClient{
		enabled: enabled,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		quote:   yahooLastPrice,
	}
}

// Enabled reports whether the client should be asked for prices.
func (c *YahooClient) Enabled() bool {
	return c != nil && c.enabled
}

// Source identifies quotes from this client
func (c *YahooClient) Source() models.QuoteSource {
	return models.SourceYahoo
}

// GetQuote fetches the latest price for a ticker or TASE security id.
func (c *YahooClient) GetQuote(ctx context.Context, symbol string) (*ParsedQuote, error) {
	ySym, scale := yahooSymbol(symbol)
	price, err := c.fetch(ctx, ySym)
	if err != nil {
		return nil, err
	}
	return &ParsedQuote{Symbol: symbol, Price: price / scale}, nil
}

// GetPairQuote prices a "BASE-QUOTE" pair. Yahoo lists crypto pairs under
// the same spelling, e.g. BTC-USD.
func (c *YahooClient) GetPairQuote(ctx context.Context, pair string) (*ParsedQuote, error) {
	price, err := c.fetch(ctx, strings.ToUpper(pair))
	if err != nil {
		return nil, err
	}
	return &ParsedQuote{Symbol: pair, Price: price}, nil
}

// GetExchangeRate fetches how many units of `to` one unit of `from` buys.
func (c *YahooClient) GetExchangeRate(ctx context.Context, from, to string) (float64, error) {
	return c.fetch(ctx, strings.ToUpper(from+to)+"=X")
}

func (c *YahooClient) fetch(ctx context.Context, ySym string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}
	price, err := c.quote(ySym)
	if err != nil {
		return 0, fmt.Errorf("yahoo %s: %w", ySym, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w for %s", ErrNoData, ySym)
	}
	return price, nil
}

// yahooSymbol maps a lookup symbol to its Yahoo spelling and the divisor that
// turns the Yahoo price into the holding's currency unit.
func yahooSymbol(symbol string) (string, float64) {
	if IsTASEID(symbol) {
		return strings.TrimSuffix(symbol, ".TA") + ".TA", agorotPerShekel
	}
	return strings.ToUpper(symbol), 1
}

// yahooLastPrice reads the regular market price, falling back to the pre and
// post market prices when the regular session has not traded.
func yahooLastPrice(symbol string) (float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	q, err := t.Quote()
	if err != nil {
		return 0, err
	}
	if q == nil {
		return 0, ErrNoData
	}
	switch {
	case q.RegularMarketPrice > 0:
		return q.RegularMarketPrice, nil
	case q.PreMarketPrice > 0:
		return q.PreMarketPrice, nil
	case q.PostMarketPrice > 0:
		return q.PostMarketPrice, nil
	}
	return 0, ErrNoData
}
