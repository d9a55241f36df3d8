// Package app wires repositories, market data clients and services together
// for the API server and the command line tool.
package app

import (
	"github.com/epeers/networth/config"
	"github.com/epeers/networth/internal/cache"
	"github.com/epeers/networth/internal/database"
	"github.com/epeers/networth/internal/handlers"
	"github.com/epeers/networth/internal/marketdata"
	"github.com/epeers/networth/internal/repository"
	"github.com/epeers/networth/internal/services"
	log "github.com/sirupsen/logrus"
)

// Services are the business services built over one database pool
type Services struct {
	Holdings  *services.HoldingService
	Grants    *services.GrantService
	Settings  *services.SettingsService
	Pricing   *services.PricingService
	Valuation *services.ValuationService
}

// NewServices builds every service from configuration
func NewServices(cfg *config.Config, db *database.DB) *Services {
	avClient := marketdata.NewClient(cfg.AVKey, cfg.PriceRateLimit)
	yahooClient := marketdata.NewYahooClient(cfg.YahooEnabled, cfg.PriceRateLimit)
	if !avClient.Enabled() && !yahooClient.Enabled() {
		log.Warn("no quote provider enabled, prices come only from caches, Bizportal and manual overrides")
	}
	bizportal := marketdata.NewBizportalClient()

	memCache := cache.NewMemoryCache(cfg.QuoteTTL)

	holdingRepo := repository.NewHoldingRepository(db.Pool)
	grantRepo := repository.NewGrantRepository(db.Pool)
	settingsRepo := repository.NewSettingsRepository(db.Pool)
	priceCacheRepo := repository.NewPriceCacheRepository(db.Pool)

	pricingSvc := services.NewPricingService(memCache, priceCacheRepo, []services.QuoteProvider{avClient, yahooClient}, bizportal, services.PricingOptions{
		QuoteTTL:       cfg.QuoteTTL,
		FXFallbackRate: cfg.FXFallbackRate,
		Concurrency:    cfg.PriceConcurrency,
	})

	return &Services{
		Holdings:  services.NewHoldingService(holdingRepo),
		Grants:    services.NewGrantService(grantRepo),
		Settings:  services.NewSettingsService(settingsRepo),
		Pricing:   pricingSvc,
		Valuation: services.NewValuationService(holdingRepo, grantRepo, settingsRepo, pricingSvc, cfg.EmployerTickers),
	}
}

// Handlers builds the HTTP handlers over the services
func (s *Services) Handlers() handlers.Handlers {
	return handlers.Handlers{
		Holdings:  handlers.NewHoldingHandler(s.Holdings),
		Grants:    handlers.NewGrantHandler(s.Grants),
		Settings:  handlers.NewSettingsHandler(s.Settings),
		Portfolio: handlers.NewPortfolioHandler(s.Valuation),
	}
}
