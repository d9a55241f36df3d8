package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/epeers/networth/internal/models"
)

var ErrInvalidSettings = errors.New("invalid settings")

// SettingsService reads and updates per-owner settings
type SettingsService struct {
	repo SettingsStore
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings returns the owner's settings, creating the defaults on first use.
func (s *SettingsService) GetSettings(ctx context.Context, ownerID int64) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies the non-nil fields of req and saves the result.
// Nothing is saved when any field is invalid.
func (s *SettingsService) UpdateSettings(ctx context.Context, ownerID int64, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.GetSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := applySettings(settings, req); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

func applySettings(s *models.Settings, req *models.UpdateSettingsRequest) error {
	if req.FXRate != nil {
		if !(*req.FXRate > 0) || math.IsInf(*req.FXRate, 0) {
			return fmt.Errorf("%w: fx_rate must be positive", ErrInvalidSettings)
		}
		s.FXRate = *req.FXRate
	}
	if req.UseManualFX != nil {
		s.UseManualFX = *req.UseManualFX
	}
	for name, rate := range map[string]*float64{
		"income_tax_rate":        req.IncomeTaxRate,
		"capital_gains_tax_rate": req.CapitalGainsTaxRate,
		"swr_rate":               req.SWRRate,
	} {
		if rate != nil && !models.ValidRate(*rate) {
			return fmt.Errorf("%w: %s must be a fraction in (0, 1]", ErrInvalidSettings, name)
		}
	}
	if req.IncomeTaxRate != nil {
		s.IncomeTaxRate = *req.IncomeTaxRate
	}
	if req.CapitalGainsTaxRate != nil {
		s.CapitalGainsTaxRate = *req.CapitalGainsTaxRate
	}
	if req.SWRRate != nil {
		s.SWRRate = *req.SWRRate
	}
	if req.GSUTaxMode != nil {
		mode, err := models.ParseTaxMode(*req.GSUTaxMode)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
		s.GSUTaxMode = mode
	}
	if req.IncludeCrypto != nil {
		v := *req.IncludeCrypto
		s.IncludeCrypto = &v
	}
	if req.AllocationTargets != nil {
		targets := make(map[string]float64, len(req.AllocationTargets))
		for name, pct := range req.AllocationTargets {
			b, ok := models.ParseBucket(name)
			if !ok {
				return fmt.Errorf("%w: unknown allocation bucket %q", ErrInvalidSettings, name)
			}
			if pct < 0 || pct > 100 {
				return fmt.Errorf("%w: target for %s must be within [0, 100]", ErrInvalidSettings, b)
			}
			targets[b.String()] += pct
		}
		s.AllocationTargets = targets
	}
	return nil
}
