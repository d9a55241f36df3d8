package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL    string
	AVKey    string
	Port     string
	LogLevel log.Level

	// YahooEnabled adds Yahoo Finance as a keyless quote source after AlphaVantage.
	YahooEnabled bool

	// QuoteTTL bounds how long a fetched quote is served from the caches.
	QuoteTTL time.Duration
	// FXFallbackRate is used when no live or configured USD/ILS rate is available.
	FXFallbackRate   float64
	EmployerTickers  []string
	PriceConcurrency int
	PriceRateLimit   int // provider requests per second
}

const (
	defaultPort             = "8080"
	defaultQuoteTTL         = 15 * time.Minute
	defaultFXFallbackRate   = 3.5
	defaultPriceConcurrency = 4
	defaultPriceRateLimit   = 5
)

var defaultEmployerTickers = []string{"GOOG", "GOOGL"}

// Load reads configuration from environment variables. A .env file in the
// working directory is read first; variables already set in the shell win.
func Load() (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	level := log.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		l, err := log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		level = l
	}

	ttl := defaultQuoteTTL
	if s := os.Getenv("QUOTE_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid QUOTE_TTL %q", s)
		}
		ttl = d
	}

	fxFallback := defaultFXFallbackRate
	if s := os.Getenv("FX_FALLBACK_RATE"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid FX_FALLBACK_RATE %q", s)
		}
		fxFallback = f
	}

	concurrency, err := positiveInt("PRICE_CONCURRENCY", defaultPriceConcurrency)
	if err != nil {
		return nil, err
	}
	rateLimit, err := positiveInt("PRICE_RATE_LIMIT", defaultPriceRateLimit)
	if err != nil {
		return nil, err
	}

	yahoo := true
	if s := os.Getenv("YAHOO_ENABLED"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid YAHOO_ENABLED %q", s)
		}
		yahoo = b
	}

	return &Config{
		PGURL:            pgURL,
		AVKey:            os.Getenv("AV_KEY"),
		Port:             port,
		LogLevel:         level,
		YahooEnabled:     yahoo,
		QuoteTTL:         ttl,
		FXFallbackRate:   fxFallback,
		EmployerTickers:  parseTickers(os.Getenv("EMPLOYER_TICKERS")),
		PriceConcurrency: concurrency,
		PriceRateLimit:   rateLimit,
	}, nil
}

func positiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

// parseTickers splits a comma separated list, uppercasing each entry.
func parseTickers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), defaultEmployerTickers...)
	}
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
