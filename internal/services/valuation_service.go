package services

import (
	"context"
	"fmt"
	"time"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/valuation"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ValuationService loads an owner's records, resolves prices and FX, and runs
// the valuation engine over them.
type ValuationService struct {
	holdings        HoldingStore
	grants          GrantStore
	settings        SettingsStore
	pricing         *PricingService
	employerTickers []string
}

// NewValuationService creates a new ValuationService. A nil employerTickers
// uses the engine default.
func NewValuationService(holdings HoldingStore, grants GrantStore, settings SettingsStore, pricing *PricingService, employerTickers []string) *ValuationService {
	return &ValuationService{
		holdings:        holdings,
		grants:          grants,
		settings:        settings,
		pricing:         pricing,
		employerTickers: employerTickers,
	}
}

// Summary values every holding of the owner. Pricing problems never fail the
// call; they surface as warnings on ctx and as unpriced symbols.
func (s *ValuationService) Summary(ctx context.Context, ownerID int64) (*models.PortfolioSummary, error) {
	defer TrackTime("Summary", time.Now())

	var (
		holdings []models.Holding
		settings *models.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holdings, err = s.holdings.ListByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to list holdings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.Get(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prices := s.pricing.GetPrices(ctx, valuation.LookupSymbols(holdings), valuation.PairSymbols(holdings))
	fx := s.pricing.GetFXRate(ctx, *settings)

	summary := valuation.Aggregate(valuation.Input{
		OwnerID:         ownerID,
		Holdings:        holdings,
		Prices:          prices,
		FXRate:          fx,
		Settings:        *settings,
		EmployerTickers: s.employerTickers,
	})
	if len(summary.UnpricedSymbols) > 0 {
		log.Debugf("Summary: owner %d has unpriced symbols %v", ownerID, summary.UnpricedSymbols)
	}
	return &summary, nil
}

// Grants groups the owner's tranches and values the unvested remainder under
// the configured tax mode.
func (s *ValuationService) Grants(ctx context.Context, ownerID int64) (*models.GrantsResponse, error) {
	defer TrackTime("Grants", time.Now())

	grants, err := s.grants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	effective := settings.Effective()

	prices := map[string]float64{}
	if len(grants) > 0 {
		prices = s.pricing.GetPrices(ctx, valuation.GrantSymbols(grants), nil)
	}
	fx := s.pricing.GetFXRate(ctx, *settings)

	return &models.GrantsResponse{
		Grants: valuation.SummarizeGrants(grants, prices, fx, effective.GSUTaxMode),
		Prices: prices,
		FXRate: fx,
	}, nil
}

// Rebalance compares the current allocation with the owner's targets.
func (s *ValuationService) Rebalance(ctx context.Context, ownerID int64) (*models.RebalanceResponse, error) {
	summary, err := s.Summary(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	drifts := valuation.Rebalance(*summary, settings.AllocationTargets)
	for i := range drifts {
		drifts[i].Actual = models.RoundMoney(drifts[i].Actual)
		drifts[i].ActualPct = models.RoundPct(drifts[i].ActualPct)
		drifts[i].DriftPct = models.RoundPct(drifts[i].DriftPct)
		drifts[i].MoveAmount = models.RoundMoney(drifts[i].MoveAmount)
	}
	return &models.RebalanceResponse{
		NetWorth: models.RoundMoney(summary.TotalNetWorth),
		Drifts:   drifts,
	}, nil
}

// DisplayTotals renders the headline figures of a summary in its base currency.
func DisplayTotals(s models.PortfolioSummary) map[string]string {
	cur := s.BaseCurrency
	if cur == "" {
		cur = models.CurrencyILS
	}
	out := map[string]string{
		"total_net_worth":  models.FormatMoney(s.TotalNetWorth, cur),
		"total_after_tax":  models.FormatMoney(s.TotalAfterTax, cur),
		"total_tax":        models.FormatMoney(s.TotalTax, cur),
		"total_tax_simple": models.FormatMoney(s.TotalTaxSimple, cur),
		"total_cost_basis": models.FormatMoney(s.TotalCostBasis, cur),
		"total_gain":       models.FormatMoney(s.TotalGain, cur),
		"swr_monthly":      models.FormatMoney(s.SWRMonthly, cur),
		"future_value_40y": models.FormatMoney(s.FutureValue40y, cur),
	}
	for _, b := range models.AllBuckets {
		out[b.String()] = models.FormatMoney(s.Allocation[b], cur)
	}
	return out
}
