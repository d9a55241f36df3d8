package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services/servicestest"
)

func f64(v float64) *float64 { return &v }

func TestCreateHolding_Defaults(t *testing.T) {
	store := servicestest.NewHoldingStore()
	svc := NewHoldingService(store)

	h, err := svc.CreateHolding(context.Background(), 7, &models.CreateHoldingRequest{
		Name:        " Bitcoin ",
		Kind:        "Crypto",
		Symbol:      "BTC",
		Quantity:    0.5,
		CostPerUnit: 30000,
		Currency:    "usd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID == 0 || h.OwnerID != 7 {
		t.Errorf("expected stored holding for owner 7, got id=%d owner=%d", h.ID, h.OwnerID)
	}
	if h.Category != models.CategoryCryptoWallet {
		t.Errorf("expected default category crypto_wallet, got %s", h.Category)
	}
	if h.CostBasis != 15000 {
		t.Errorf("expected cost basis 15000, got %v", h.CostBasis)
	}
	if h.Name != "Bitcoin" || h.Currency != models.CurrencyUSD {
		t.Errorf("expected trimmed name and USD, got %q %s", h.Name, h.Currency)
	}
	if h.AcquiredAt.IsZero() {
		t.Error("expected acquired_at to default to now")
	}
}

func TestCreateHolding_Validation(t *testing.T) {
	svc := NewHoldingService(servicestest.NewHoldingStore())
	base := models.CreateHoldingRequest{Name: "x", Kind: "equity", Symbol: "X", Currency: "ILS", Quantity: 1}

	tests := []struct {
		name   string
		mutate func(r *models.CreateHoldingRequest)
		target error
	}{
		{"unknown kind", func(r *models.CreateHoldingRequest) { r.Kind = "option" }, models.ErrUnknownAssetKind},
		{"unknown category", func(r *models.CreateHoldingRequest) { r.Category = "garage" }, models.ErrUnknownCategory},
		{"unknown currency", func(r *models.CreateHoldingRequest) { r.Currency = "EUR" }, models.ErrUnknownCurrency},
		{"negative quantity", func(r *models.CreateHoldingRequest) { r.Quantity = -1 }, ErrInvalidHolding},
		{"tax rate above one", func(r *models.CreateHoldingRequest) { r.TaxRate = f64(25) }, ErrInvalidHolding},
		{"split out of range", func(r *models.CreateHoldingRequest) {
			r.Allocation = &models.AllocationSplits{Cash: 1.5}
		}, ErrInvalidHolding},
		{"blank name", func(r *models.CreateHoldingRequest) { r.Name = "  " }, ErrInvalidHolding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := svc.CreateHolding(context.Background(), 1, &req)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
			if !errors.Is(err, ErrInvalidHolding) {
				t.Errorf("expected every validation failure to wrap ErrInvalidHolding, got %v", err)
			}
		})
	}
}

func TestHolding_ZeroTaxRateIsExempt(t *testing.T) {
	svc := NewHoldingService(servicestest.NewHoldingStore())
	ctx := context.Background()

	h, err := svc.CreateHolding(ctx, 1, &models.CreateHoldingRequest{
		Name: "Gemel", Kind: "fund", Category: "investment_fund", Symbol: "GML", Currency: "ILS",
		Quantity: 1, CostPerUnit: 100, TaxRate: f64(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.TaxRate == nil || *h.TaxRate != 0 {
		t.Fatalf("expected an explicit zero tax rate to be kept, got %v", h.TaxRate)
	}

	updated, err := svc.UpdateHolding(ctx, h.ID, 1, &models.UpdateHoldingRequest{TaxRate: f64(0.1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TaxRate == nil || *updated.TaxRate != 0.1 {
		t.Errorf("expected tax rate 0.1, got %v", updated.TaxRate)
	}

	updated, err = svc.UpdateHolding(ctx, h.ID, 1, &models.UpdateHoldingRequest{TaxRate: f64(-1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TaxRate != nil {
		t.Errorf("expected a negative tax rate to clear the override, got %v", *updated.TaxRate)
	}
}

func TestCreateHolding_UnbalancedSplitsWarn(t *testing.T) {
	svc := NewHoldingService(servicestest.NewHoldingStore())
	ctx, wc := NewWarningContext(context.Background())

	h, err := svc.CreateHolding(ctx, 1, &models.CreateHoldingRequest{
		Name: "Mixed fund", Kind: "fund", Symbol: "MIX", Currency: "ILS", Quantity: 1,
		Allocation: &models.AllocationSplits{DomesticEquity: 0.5, Bonds: 0.3},
	})
	if err != nil {
		t.Fatalf("unbalanced splits must still be accepted: %v", err)
	}
	if h.Allocation.Bonds != 0.3 {
		t.Errorf("splits must pass through unchanged, got %+v", h.Allocation)
	}
	if !hasWarning(wc.GetWarnings(), models.WarnAllocationSplitSum) {
		t.Errorf("expected W3001, got %v", wc.GetWarnings())
	}
}

func TestUpdateHolding(t *testing.T) {
	svc := NewHoldingService(servicestest.NewHoldingStore())
	ctx := context.Background()
	h, err := svc.CreateHolding(ctx, 1, &models.CreateHoldingRequest{
		Name: "VOO", Kind: "etf", Symbol: "VOO", Currency: "USD", Quantity: 2, CostPerUnit: 400,
		ManualPrice: f64(450),
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateHolding(ctx, h.ID, 1, &models.UpdateHoldingRequest{
		Quantity:    f64(3),
		ManualPrice: f64(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CostBasis != 1200 {
		t.Errorf("expected recomputed cost basis 1200, got %v", updated.CostBasis)
	}
	if updated.ManualPrice != nil {
		t.Errorf("expected zero manual price to clear the override, got %v", *updated.ManualPrice)
	}

	if _, err := svc.UpdateHolding(ctx, h.ID, 2, &models.UpdateHoldingRequest{}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for another owner, got %v", err)
	}
	if _, err := svc.UpdateHolding(ctx, 999, 1, &models.UpdateHoldingRequest{}); !errors.Is(err, ErrHoldingNotFound) {
		t.Errorf("expected ErrHoldingNotFound, got %v", err)
	}
}

func TestDeleteHolding(t *testing.T) {
	store := servicestest.NewHoldingStore()
	svc := NewHoldingService(store)
	ctx := context.Background()
	h, _ := svc.CreateHolding(ctx, 1, &models.CreateHoldingRequest{Name: "Cash", Kind: "cash", Symbol: "ILS", Currency: "ILS", Quantity: 100, CostPerUnit: 1})

	if err := svc.DeleteHolding(ctx, h.ID, 2); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeleteHolding(ctx, h.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Error("holding was not deleted")
	}
	if err := svc.DeleteHolding(ctx, h.ID, 1); !errors.Is(err, ErrHoldingNotFound) {
		t.Errorf("expected ErrHoldingNotFound on second delete, got %v", err)
	}
}

func TestImportHoldings_AllOrNothing(t *testing.T) {
	store := servicestest.NewHoldingStore()
	svc := NewHoldingService(store)
	acquired := models.FlexibleDate{Time: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}

	reqs := []models.CreateHoldingRequest{
		{Name: "Deposit", Kind: "cash", Symbol: "ILS", Currency: "ILS", Quantity: 1000, CostPerUnit: 1, AcquiredAt: &acquired},
		{Name: "Bad", Kind: "nonsense", Symbol: "X", Currency: "ILS"},
	}
	_, err := svc.ImportHoldings(context.Background(), 1, reqs)
	if !errors.Is(err, ErrInvalidHolding) {
		t.Fatalf("expected ErrInvalidHolding, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("expected the failing row to be named, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("nothing may be stored when a row fails")
	}

	holdings, err := svc.ImportHoldings(context.Background(), 1, reqs[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 1 || !holdings[0].AcquiredAt.Equal(acquired.Time) {
		t.Errorf("unexpected import result %+v", holdings)
	}

	if _, err := svc.ImportHoldings(context.Background(), 1, nil); !errors.Is(err, ErrInvalidHolding) {
		t.Errorf("expected ErrInvalidHolding for empty import, got %v", err)
	}
}

func TestListHoldings_EmptyIsNotNil(t *testing.T) {
	svc := NewHoldingService(servicestest.NewHoldingStore())
	holdings, err := svc.ListHoldings(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if holdings == nil || len(holdings) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", holdings)
	}
}
