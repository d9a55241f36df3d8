package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/networth/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrHoldingNotFound = errors.New("holding not found")

// HoldingRepository handles database operations for holdings
type HoldingRepository struct {
	pool *pgxpool.Pool
}

// NewHoldingRepository creates a new HoldingRepository
func NewHoldingRepository(pool *pgxpool.Pool) *HoldingRepository {
	return &HoldingRepository{pool: pool}
}

const holdingColumns = `
	id, owner, name, kind, category, symbol, quantity, cost_per_unit, cost_basis,
	currency, manual_price, tax_rate,
	alloc_domestic_equity, alloc_foreign_equity, alloc_crypto, alloc_employment, alloc_bonds, alloc_cash,
	notes, acquired_at, created, updated`

func scanHolding(row pgx.Row) (*models.Holding, error) {
	h := &models.Holding{}
	err := row.Scan(
		&h.ID, &h.OwnerID, &h.Name, &h.Kind, &h.Category, &h.Symbol, &h.Quantity, &h.CostPerUnit, &h.CostBasis,
		&h.Currency, &h.ManualPrice, &h.TaxRate,
		&h.Allocation.DomesticEquity, &h.Allocation.ForeignEquity, &h.Allocation.Crypto,
		&h.Allocation.Employment, &h.Allocation.Bonds, &h.Allocation.Cash,
		&h.Notes, &h.AcquiredAt, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

// Create inserts a holding, filling in its ID and timestamps
func (r *HoldingRepository) Create(ctx context.Context, h *models.Holding) error {
	return r.insert(ctx, r.pool, h)
}

// CreateAll inserts holdings in one transaction; either all are stored or none.
func (r *HoldingRepository) CreateAll(ctx context.Context, holdings []models.Holding) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range holdings {
		if err := r.insert(ctx, tx, &holdings[i]); err != nil {
			return fmt.Errorf("failed to insert holding %q: %w", holdings[i].Name, err)
		}
	}
	return tx.Commit(ctx)
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *HoldingRepository) insert(ctx context.Context, q querier, h *models.Holding) error {
	query := `
		INSERT INTO holding (owner, name, kind, category, symbol, quantity, cost_per_unit, cost_basis,
			currency, manual_price, tax_rate,
			alloc_domestic_equity, alloc_foreign_equity, alloc_crypto, alloc_employment, alloc_bonds, alloc_cash,
			notes, acquired_at, created, updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())
		RETURNING id, created, updated
	`
	return q.QueryRow(ctx, query,
		h.OwnerID, h.Name, h.Kind, h.Category, h.Symbol, h.Quantity, h.CostPerUnit, h.CostBasis,
		h.Currency, h.ManualPrice, h.TaxRate,
		h.Allocation.DomesticEquity, h.Allocation.ForeignEquity, h.Allocation.Crypto,
		h.Allocation.Employment, h.Allocation.Bonds, h.Allocation.Cash,
		h.Notes, h.AcquiredAt,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
}

// GetByID retrieves a holding by ID
func (r *HoldingRepository) GetByID(ctx context.Context, id int64) (*models.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE id = $1`
	h, err := scanHolding(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHoldingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return h, nil
}

// ListByOwner returns an owner's holdings in insertion order
func (r *HoldingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE owner = $1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, *h)
	}
	return holdings, rows.Err()
}

// Update overwrites the mutable fields of a holding
func (r *HoldingRepository) Update(ctx context.Context, h *models.Holding) error {
	query := `
		UPDATE holding
		SET name = $1, kind = $2, category = $3, symbol = $4, quantity = $5, cost_per_unit = $6,
			cost_basis = $7, currency = $8, manual_price = $9, tax_rate = $10,
			alloc_domestic_equity = $11, alloc_foreign_equity = $12, alloc_crypto = $13,
			alloc_employment = $14, alloc_bonds = $15, alloc_cash = $16,
			notes = $17, acquired_at = $18, updated = NOW()
		WHERE id = $19
		RETURNING updated
	`
	err := r.pool.QueryRow(ctx, query,
		h.Name, h.Kind, h.Category, h.Symbol, h.Quantity, h.CostPerUnit,
		h.CostBasis, h.Currency, h.ManualPrice, h.TaxRate,
		h.Allocation.DomesticEquity, h.Allocation.ForeignEquity, h.Allocation.Crypto,
		h.Allocation.Employment, h.Allocation.Bonds, h.Allocation.Cash,
		h.Notes, h.AcquiredAt, h.ID,
	).Scan(&h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrHoldingNotFound
	}
	return err
}

// Delete removes a holding
func (r *HoldingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM holding WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrHoldingNotFound
	}
	return nil
}
