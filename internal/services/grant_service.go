package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/repository"
)

var (
	ErrGrantNotFound = repository.ErrGrantNotFound
	ErrInvalidGrant  = errors.New("invalid grant")
)

// GrantService handles stock grant tranches
type GrantService struct {
	repo GrantStore
}

// NewGrantService creates a new GrantService
func NewGrantService(repo GrantStore) *GrantService {
	return &GrantService{repo: repo}
}

// CreateGrant stores one tranche. The vested flag is taken as given and never
// derived from the vest date.
func (s *GrantService) CreateGrant(ctx context.Context, ownerID int64, req *models.CreateGrantRequest) (*models.StockGrant, error) {
	if req.Units <= 0 {
		return nil, fmt.Errorf("%w: units must be positive", ErrInvalidGrant)
	}
	if req.GrantPrice < 0 {
		return nil, fmt.Errorf("%w: grant_price must not be negative", ErrInvalidGrant)
	}
	if req.GrantDate.IsZero() || req.VestDate.IsZero() {
		return nil, fmt.Errorf("%w: grant_date and vest_date are required", ErrInvalidGrant)
	}
	if req.VestDate.Before(req.GrantDate.Time) {
		return nil, fmt.Errorf("%w: vest_date precedes grant_date", ErrInvalidGrant)
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		symbol = models.DefaultGrantSymbol
	}
	g := &models.StockGrant{
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(req.Name),
		Symbol:     symbol,
		GrantDate:  req.GrantDate.Time,
		VestDate:   req.VestDate.Time,
		Units:      req.Units,
		GrantPrice: req.GrantPrice,
		IsVested:   req.IsVested,
	}
	if req.VestPrice != nil && *req.VestPrice > 0 {
		v := *req.VestPrice
		g.VestPrice = &v
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}
	return g, nil
}

// ListGrants returns all tranches of an owner
func (s *GrantService) ListGrants(ctx context.Context, ownerID int64) ([]models.StockGrant, error) {
	grants, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	if grants == nil {
		grants = []models.StockGrant{}
	}
	return grants, nil
}

// DeleteGrant removes a tranche owned by ownerID
func (s *GrantService) DeleteGrant(ctx context.Context, id, ownerID int64) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g.OwnerID != ownerID {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}
