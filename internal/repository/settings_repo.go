package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/networth/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository stores the per-owner settings row
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the owner's settings, creating the default row on first access.
func (r *SettingsRepository) Get(ctx context.Context, ownerID int64) (*models.Settings, error) {
	query := `
		SELECT owner, base_currency, fx_rate, use_manual_fx, income_tax_rate, capital_gains_tax_rate,
			gsu_tax_mode, swr_rate, include_crypto, allocation_targets, updated
		FROM settings
		WHERE owner = $1
	`
	s := &models.Settings{}
	var includeCrypto bool
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&s.OwnerID, &s.BaseCurrency, &s.FXRate, &s.UseManualFX, &s.IncomeTaxRate, &s.CapitalGainsTaxRate,
		&s.GSUTaxMode, &s.SWRRate, &includeCrypto, &s.AllocationTargets, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		def := models.DefaultSettings(ownerID)
		if err := r.Save(ctx, &def); err != nil {
			return nil, err
		}
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	s.IncludeCrypto = &includeCrypto
	if s.AllocationTargets == nil {
		s.AllocationTargets = map[string]float64{}
	}
	return s, nil
}

// Save upserts the owner's settings
func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO settings (owner, base_currency, fx_rate, use_manual_fx, income_tax_rate, capital_gains_tax_rate,
			gsu_tax_mode, swr_rate, include_crypto, allocation_targets, updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (owner) DO UPDATE
		SET base_currency = EXCLUDED.base_currency, fx_rate = EXCLUDED.fx_rate,
			use_manual_fx = EXCLUDED.use_manual_fx, income_tax_rate = EXCLUDED.income_tax_rate,
			capital_gains_tax_rate = EXCLUDED.capital_gains_tax_rate, gsu_tax_mode = EXCLUDED.gsu_tax_mode,
			swr_rate = EXCLUDED.swr_rate, include_crypto = EXCLUDED.include_crypto,
			allocation_targets = EXCLUDED.allocation_targets, updated = NOW()
		RETURNING updated
	`
	targets := s.AllocationTargets
	if targets == nil {
		targets = map[string]float64{}
	}
	err := r.pool.QueryRow(ctx, query,
		s.OwnerID, s.BaseCurrency, s.FXRate, s.UseManualFX, s.IncomeTaxRate, s.CapitalGainsTaxRate,
		s.GSUTaxMode, s.SWRRate, s.CryptoIncluded(), targets,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
