package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/epeers/networth/internal/cache"
	"github.com/epeers/networth/internal/marketdata"
	"github.com/epeers/networth/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PricingOptions tunes cache freshness and provider fan-out
type PricingOptions struct {
	QuoteTTL       time.Duration
	FXFallbackRate float64
	Concurrency    int
}

// PricingService resolves prices through three layers: the in-memory cache
// (L1), the quote_cache table (L2) and the market data providers (L3).
// Providers are asked in order; the first positive price wins.
// Partial results are normal; a symbol nobody can price is simply absent.
type PricingService struct {
	mem       *cache.MemoryCache
	store     QuoteStore
	providers []QuoteProvider
	scraper   PriceScraper
	opts      PricingOptions
}

// NewPricingService creates a new PricingService. scraper may be nil.
func NewPricingService(mem *cache.MemoryCache, store QuoteStore, providers []QuoteProvider, scraper PriceScraper, opts PricingOptions) *PricingService {
	if opts.QuoteTTL <= 0 {
		opts.QuoteTTL = 15 * time.Minute
	}
	if opts.FXFallbackRate <= 0 {
		opts.FXFallbackRate = 3.5
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &PricingService{
		mem:       mem,
		store:     store,
		providers: providers,
		scraper:   scraper,
		opts:      opts,
	}
}

// GetPrices returns native-currency prices for the requested lookup symbols.
// Symbols in pairs are quoted as crypto pairs, everything else as tickers.
// Unresolvable symbols are omitted and reported as W2001 warnings on ctx.
func (s *PricingService) GetPrices(ctx context.Context, symbols []string, pairs map[string]bool) map[string]float64 {
	defer TrackTime("GetPrices", time.Now())

	prices := make(map[string]float64, len(symbols))
	var missing []string
	for _, sym := range dedupe(symbols) {
		if q, ok := s.mem.GetQuote(sym); ok {
			prices[sym] = q.Price
			continue
		}
		missing = append(missing, sym)
	}
	if len(missing) == 0 {
		return prices
	}

	// L2
	cached, err := s.store.GetCachedQuotes(ctx, missing, s.opts.QuoteTTL)
	if err != nil {
		log.Warnf("GetPrices: quote cache unavailable: %v", err)
	}
	var stillMissing []string
	for _, sym := range missing {
		if q, ok := cached[sym]; ok && q.Price > 0 {
			prices[sym] = q.Price
			s.mem.SetQuote(q)
			continue
		}
		stillMissing = append(stillMissing, sym)
	}
	if len(stillMissing) == 0 {
		return prices
	}

	// L3
	var (
		mu      sync.Mutex
		fetched []models.Quote
		g       errgroup.Group
	)
	g.SetLimit(s.opts.Concurrency)
	for _, sym := range stillMissing {
		g.Go(func() error {
			q, err := s.fetchQuote(ctx, sym, pairs[sym])
			if err != nil {
				log.Warnf("GetPrices: no price for %s: %v", sym, err)
				Warnf(ctx, models.WarnUnpricedSymbol, "no price available for %s, valued at zero", sym)
				return nil
			}
			mu.Lock()
			fetched = append(fetched, q)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, q := range fetched {
		prices[q.Symbol] = q.Price
		s.mem.SetQuote(q)
	}
	if err := s.store.CacheQuotes(ctx, fetched); err != nil {
		log.Errorf("GetPrices: failed to cache quotes: %v", err)
	}
	return prices
}

// fetchQuote asks each enabled provider in turn, then the scraper for TASE ids.
func (s *PricingService) fetchQuote(ctx context.Context, symbol string, pair bool) (models.Quote, error) {
	primaryErr := errors.New("no price provider configured")
	for _, p := range s.providers {
		if p == nil || !p.Enabled() {
			continue
		}
		var (
			pq  *marketdata.ParsedQuote
			err error
		)
		if pair {
			pq, err = p.GetPairQuote(ctx, symbol)
		} else {
			pq, err = p.GetQuote(ctx, symbol)
		}
		if err == nil && pq.Price > 0 {
			return models.Quote{Symbol: symbol, Price: pq.Price, Source: p.Source(), FetchedAt: time.Now()}, nil
		}
		if err == nil {
			err = fmt.Errorf("%w for %s", marketdata.ErrNoData, symbol)
		}
		log.Debugf("fetchQuote: %s failed for %s: %v", p.Source(), symbol, err)
		primaryErr = err
	}

	if s.scraper == nil || !marketdata.IsTASEID(symbol) {
		return models.Quote{}, primaryErr
	}

	Warnf(ctx, models.WarnPriceSourceFailed, "primary price source failed for %s, trying Bizportal: %v", symbol, primaryErr)
	price, err := s.scraper.GetPrice(ctx, symbol)
	if err != nil {
		return models.Quote{}, fmt.Errorf("bizportal: %w (primary: %v)", err, primaryErr)
	}
	return models.Quote{Symbol: symbol, Price: price, Source: models.SourceBizportal, FetchedAt: time.Now()}, nil
}

// GetFXRate returns ILS per USD. A manual rate in settings is used as-is.
// Otherwise the rate comes from the caches or the provider; when every source
// fails the stored settings rate (or the configured fallback) is used with a
// W2002 warning.
func (s *PricingService) GetFXRate(ctx context.Context, settings models.Settings) float64 {
	defer TrackTime("GetFXRate", time.Now())

	if settings.UseManualFX && settings.FXRate > 0 {
		return settings.FXRate
	}

	pair := models.FXPairUSDILS
	if r, ok := s.mem.GetFXRate(pair); ok {
		return r
	}

	cached, err := s.store.GetCachedFXRate(ctx, pair, s.opts.QuoteTTL)
	if err != nil {
		log.Warnf("GetFXRate: fx cache unavailable: %v", err)
	}
	if cached != nil && cached.Rate > 0 {
		s.mem.SetFXRate(pair, cached.Rate)
		return cached.Rate
	}

	for _, p := range s.providers {
		if p == nil || !p.Enabled() {
			continue
		}
		r, err := p.GetExchangeRate(ctx, "USD", "ILS")
		if err == nil && r > 0 {
			s.mem.SetFXRate(pair, r)
			if err := s.store.CacheFXRate(ctx, &models.FXRate{Pair: pair, Rate: r, FetchedAt: time.Now()}); err != nil {
				log.Errorf("GetFXRate: failed to cache rate: %v", err)
			}
			return r
		}
		log.Warnf("GetFXRate: %s failed: %v", p.Source(), err)
	}

	fallback := s.opts.FXFallbackRate
	if settings.FXRate > 0 {
		fallback = settings.FXRate
	}
	Warnf(ctx, models.WarnFXFallback, "live USD/ILS rate unavailable, using %.4f", fallback)
	return fallback
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
