package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/epeers/networth/internal/models"
)

// MemoryCache provides an in-memory L1 cache for quotes and FX rates
type MemoryCache struct {
	quotes *gocache.Cache
	fx     *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache whose entries expire after ttl
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		quotes: gocache.New(ttl, 2*ttl),
		fx:     gocache.New(ttl, 2*ttl),
	}
}

// GetQuote retrieves a cached quote if fresh
func (c *MemoryCache) GetQuote(symbol string) (models.Quote, bool) {
	v, ok := c.quotes.Get(symbol)
	if !ok {
		return models.Quote{}, false
	}
	return v.(models.Quote), true
}

// SetQuote caches a quote under its symbol
func (c *MemoryCache) SetQuote(q models.Quote) {
	c.quotes.SetDefault(q.Symbol, q)
}

// InvalidateQuote removes a quote from the cache
func (c *MemoryCache) InvalidateQuote(symbol string) {
	c.quotes.Delete(symbol)
}

// GetFXRate retrieves a cached exchange rate if fresh
func (c *MemoryCache) GetFXRate(pair string) (float64, bool) {
	v, ok := c.fx.Get(pair)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// SetFXRate caches an exchange rate
func (c *MemoryCache) SetFXRate(pair string, rate float64) {
	c.fx.SetDefault(pair, rate)
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.quotes.Flush()
	c.fx.Flush()
}
