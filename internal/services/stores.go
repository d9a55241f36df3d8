package services

import (
	"context"
	"time"

	"github.com/epeers/networth/internal/marketdata"
	"github.com/epeers/networth/internal/models"
)

// The services depend on these narrow views of the repositories and market
// data clients. The concrete implementations live in internal/repository and
// internal/marketdata.

// HoldingStore persists holdings
type HoldingStore interface {
	Create(ctx context.Context, h *models.Holding) error
	CreateAll(ctx context.Context, holdings []models.Holding) error
	GetByID(ctx context.Context, id int64) (*models.Holding, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Holding, error)
	Update(ctx context.Context, h *models.Holding) error
	Delete(ctx context.Context, id int64) error
}

// GrantStore persists stock grant tranches
type GrantStore interface {
	Create(ctx context.Context, g *models.StockGrant) error
	GetByID(ctx context.Context, id int64) (*models.StockGrant, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.StockGrant, error)
	Delete(ctx context.Context, id int64) error
}

// SettingsStore persists per-owner settings
type SettingsStore interface {
	Get(ctx context.Context, ownerID int64) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings) error
}

// QuoteStore is the L2 price cache
type QuoteStore interface {
	GetCachedQuotes(ctx context.Context, symbols []string, maxAge time.Duration) (map[string]models.Quote, error)
	CacheQuotes(ctx context.Context, quotes []models.Quote) error
	GetCachedFXRate(ctx context.Context, pair string, maxAge time.Duration) (*models.FXRate, error)
	CacheFXRate(ctx context.Context, fx *models.FXRate) error
}

// QuoteProvider is an L3 source for tickers, crypto pairs and FX
type QuoteProvider interface {
	Enabled() bool
	Source() models.QuoteSource
	GetQuote(ctx context.Context, symbol string) (*marketdata.ParsedQuote, error)
	GetPairQuote(ctx context.Context, pair string) (*marketdata.ParsedQuote, error)
	GetExchangeRate(ctx context.Context, from, to string) (float64, error)
}

// PriceScraper is the fallback source for TASE security ids
type PriceScraper interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}
