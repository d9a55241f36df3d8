package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/repository"
	"github.com/epeers/networth/internal/valuation"
)

var (
	ErrHoldingNotFound = repository.ErrHoldingNotFound
	ErrInvalidHolding  = errors.New("invalid holding")
	ErrUnauthorized    = errors.New("not authorized to access this record")
)

// HoldingService handles holding business logic
type HoldingService struct {
	repo HoldingStore
}

// NewHoldingService creates a new HoldingService
func NewHoldingService(repo HoldingStore) *HoldingService {
	return &HoldingService{repo: repo}
}

// CreateHolding validates the request, fills in defaults and stores the holding.
// Split sums away from 1.0 are accepted with a W3001 warning.
func (s *HoldingService) CreateHolding(ctx context.Context, ownerID int64, req *models.CreateHoldingRequest) (*models.Holding, error) {
	h, err := buildHolding(ownerID, req, time.Now())
	if err != nil {
		return nil, err
	}
	warnUnbalanced(ctx, &h)

	if err := s.repo.Create(ctx, &h); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}
	return &h, nil
}

// ImportHoldings validates every row before storing any of them. The import is
// all-or-nothing; a validation failure names the offending row.
func (s *HoldingService) ImportHoldings(ctx context.Context, ownerID int64, reqs []models.CreateHoldingRequest) ([]models.Holding, error) {
	defer TrackTime("ImportHoldings", time.Now())

	now := time.Now()
	holdings := make([]models.Holding, 0, len(reqs))
	var problems []string
	for i := range reqs {
		h, err := buildHolding(ownerID, &reqs[i], now)
		if err != nil {
			// rows are numbered from 2, the header is row 1
			problems = append(problems, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		warnUnbalanced(ctx, &h)
		holdings = append(holdings, h)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHolding, strings.Join(problems, "; "))
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("%w: no rows to import", ErrInvalidHolding)
	}

	if err := s.repo.CreateAll(ctx, holdings); err != nil {
		return nil, fmt.Errorf("failed to import holdings: %w", err)
	}
	return holdings, nil
}

// GetHolding returns a holding owned by ownerID
func (s *HoldingService) GetHolding(ctx context.Context, id, ownerID int64) (*models.Holding, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	return h, nil
}

// ListHoldings returns all holdings of an owner
func (s *HoldingService) ListHoldings(ctx context.Context, ownerID int64) ([]models.Holding, error) {
	holdings, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	return holdings, nil
}

// UpdateHolding overwrites the fields present in req. Cost basis is recomputed
// from quantity and cost per unit on every update.
func (s *HoldingService) UpdateHolding(ctx context.Context, id, ownerID int64, req *models.UpdateHoldingRequest) (*models.Holding, error) {
	h, err := s.GetHolding(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is empty", ErrInvalidHolding)
		}
		h.Name = name
	}
	if req.Category != nil {
		c, err := models.ParseCategory(*req.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHolding, err)
		}
		h.Category = c
	}
	if req.Symbol != nil {
		h.Symbol = strings.TrimSpace(*req.Symbol)
	}
	if req.Quantity != nil {
		h.Quantity = *req.Quantity
	}
	if req.CostPerUnit != nil {
		h.CostPerUnit = *req.CostPerUnit
	}
	if req.ManualPrice != nil {
		h.ManualPrice = optionalPositive(*req.ManualPrice)
	}
	if req.TaxRate != nil {
		h.TaxRate = optionalRate(*req.TaxRate)
	}
	if req.Allocation != nil {
		h.Allocation = *req.Allocation
	}
	if req.Notes != nil {
		h.Notes = req.Notes
	}
	if err := validateHolding(h); err != nil {
		return nil, err
	}
	h.CostBasis = h.Quantity * h.CostPerUnit
	warnUnbalanced(ctx, h)

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}
	return h, nil
}

// DeleteHolding removes a holding owned by ownerID
func (s *HoldingService) DeleteHolding(ctx context.Context, id, ownerID int64) error {
	if _, err := s.GetHolding(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func buildHolding(ownerID int64, req *models.CreateHoldingRequest, now time.Time) (models.Holding, error) {
	kind, err := models.ParseAssetKind(req.Kind)
	if err != nil {
		return models.Holding{}, fmt.Errorf("%w: %w", ErrInvalidHolding, err)
	}
	category := models.DefaultCategory(kind)
	if strings.TrimSpace(req.Category) != "" {
		if category, err = models.ParseCategory(req.Category); err != nil {
			return models.Holding{}, fmt.Errorf("%w: %w", ErrInvalidHolding, err)
		}
	}
	currency, err := models.ParseCurrency(req.Currency)
	if err != nil {
		return models.Holding{}, fmt.Errorf("%w: %w", ErrInvalidHolding, err)
	}

	h := models.Holding{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Kind:        kind,
		Category:    category,
		Symbol:      strings.TrimSpace(req.Symbol),
		Quantity:    req.Quantity,
		CostPerUnit: req.CostPerUnit,
		Currency:    currency,
		Notes:       req.Notes,
		AcquiredAt:  now,
	}
	if req.ManualPrice != nil {
		h.ManualPrice = optionalPositive(*req.ManualPrice)
	}
	if req.TaxRate != nil {
		h.TaxRate = optionalRate(*req.TaxRate)
	}
	if req.Allocation != nil {
		h.Allocation = *req.Allocation
	}
	if req.AcquiredAt != nil && !req.AcquiredAt.IsZero() {
		h.AcquiredAt = req.AcquiredAt.Time
	}
	if h.Name == "" {
		return models.Holding{}, fmt.Errorf("%w: name is empty", ErrInvalidHolding)
	}
	if err := validateHolding(&h); err != nil {
		return models.Holding{}, err
	}
	h.CostBasis = h.Quantity * h.CostPerUnit
	return h, nil
}

func validateHolding(h *models.Holding) error {
	if h.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidHolding)
	}
	if h.CostPerUnit < 0 {
		return fmt.Errorf("%w: cost_per_unit must not be negative", ErrInvalidHolding)
	}
	if h.TaxRate != nil && !models.ValidFraction(*h.TaxRate) {
		return fmt.Errorf("%w: tax_rate must be a fraction in [0, 1]", ErrInvalidHolding)
	}
	for b, frac := range h.Allocation.ByBucket() {
		if frac < 0 || frac > 1 {
			return fmt.Errorf("%w: %s split must be within [0, 1]", ErrInvalidHolding, models.Bucket(b))
		}
	}
	return nil
}

// optionalPositive maps zero or negative overrides to "not set".
func optionalPositive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

// optionalRate maps a negative tax rate to "not set". Zero is kept and marks
// the holding tax exempt.
func optionalRate(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

func warnUnbalanced(ctx context.Context, h *models.Holding) {
	if !valuation.SplitsUnbalanced(h) {
		return
	}
	AddWarning(ctx, models.Warning{
		Code:    models.WarnAllocationSplitSum,
		Message: fmt.Sprintf("allocation splits for %q sum to %.2f, applied as given", h.Name, h.Allocation.Sum()),
	})
}
