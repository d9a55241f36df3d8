package marketdata

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

	"github.com/epeers/networth/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Alphavantage is a Stock, FX and crypto API.
// It is a subscription service, but provides free API access
// https://www.alphavantage.co/documentation/
const defaultBaseURL = "https://www.alphavantage.co/query"

// DefaultRateLimit is the outbound request budget, requests per second.
const DefaultRateLimit = 5

// Client is an HTTP client for the AlphaVantage API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new AlphaVantage client limited to requestsPerSecond.
// A non-positive limit uses DefaultRateLimit.
func NewClient(apiKey string, requestsPerSecond int) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, requestsPerSecond)
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string, requestsPerSecond int) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRateLimit
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Enabled reports whether the client has credentials to call the API.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Source identifies quotes from this client
func (c *Client) Source() models.QuoteSource {
	return models.SourceAlphaVantage
}

// GetQuote fetches the latest price for a ticker symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*ParsedQuote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var quoteResp GlobalQuoteResponse
	if err := json.Unmarshal(body, &quoteResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if msg := throttleMessage(quoteResp.Note, quoteResp.Information); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrThrottled, msg)
	}
	if quoteResp.GlobalQuote.Price == "" {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	price, err := strconv.ParseFloat(quoteResp.GlobalQuote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}

	return &ParsedQuote{
		Symbol: symbol,
		Price:  price,
	}, nil
}

// GetExchangeRate fetches how many units of `to` one unit of `from` buys.
// Works for fiat pairs (USD→ILS) and crypto pairs (BTC→USD).
func (c *Client) GetExchangeRate(ctx context.Context, from, to string) (float64, error) {
	params := url.Values{}
	params.Set("function", "CURRENCY_EXCHANGE_RATE")
	params.Set("from_currency", from)
	params.Set("to_currency", to)
	params.Set("apikey", c.apiKey)

	body, err := c.get(ctx, params)
	if err != nil {
		return 0, err
	}

	var fxResp ExchangeRateResponse
	if err := json.Unmarshal(body, &fxResp); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if msg := throttleMessage(fxResp.Note, fxResp.Information); msg != "" {
		return 0, fmt.Errorf("%w: %s", ErrThrottled, msg)
	}
	if fxResp.Rate.Rate == "" {
		return 0, fmt.Errorf("%w for %s/%s", ErrNoData, from, to)
	}

	r, err := strconv.ParseFloat(fxResp.Rate.Rate, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse exchange rate: %w", err)
	}
	return r, nil
}

// GetPairQuote prices a "BASE-QUOTE" pair such as BTC-USD.
func (c *Client) GetPairQuote(ctx context.Context, pair string) (*ParsedQuote, error) {
	base, quote, ok := strings.Cut(pair, "-")
	if !ok || base == "" || quote == "" {
		return nil, fmt.Errorf("malformed pair %q", pair)
	}
	price, err := c.GetExchangeRate(ctx, base, quote)
	if err != nil {
		return nil, err
	}
	return &ParsedQuote{Symbol: pair, Price: price}, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	resp, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		log.Warnf("AlphaVantage %s returned status %d", params.Get("function"), resp.StatusCode)
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}

// throttleMessage returns the provider's quota notice, if any. AlphaVantage
// reports exhaustion with HTTP 200 and a Note or Information field.
func throttleMessage(note, info string) string {
	if note != "" {
		return note
	}
	return info
}
