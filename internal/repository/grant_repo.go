package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/networth/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrGrantNotFound = errors.New("grant not found")

// GrantRepository handles database operations for stock grant tranches
type GrantRepository struct {
	pool *pgxpool.Pool
}

// NewGrantRepository creates a new GrantRepository
func NewGrantRepository(pool *pgxpool.Pool) *GrantRepository {
	return &GrantRepository{pool: pool}
}

// Create inserts a tranche
func (r *GrantRepository) Create(ctx context.Context, g *models.StockGrant) error {
	query := `
		INSERT INTO stock_grant (owner, name, symbol, grant_date, vest_date, units, grant_price, vest_price, is_vested, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created
	`
	return r.pool.QueryRow(ctx, query,
		g.OwnerID, g.Name, g.Symbol, g.GrantDate, g.VestDate, g.Units, g.GrantPrice, g.VestPrice, g.IsVested,
	).Scan(&g.ID, &g.CreatedAt)
}

// GetByID retrieves a tranche by ID
func (r *GrantRepository) GetByID(ctx context.Context, id int64) (*models.StockGrant, error) {
	query := `
		SELECT id, owner, name, symbol, grant_date, vest_date, units, grant_price, vest_price, is_vested, created
		FROM stock_grant
		WHERE id = $1
	`
	g := &models.StockGrant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.Symbol, &g.GrantDate, &g.VestDate, &g.Units, &g.GrantPrice, &g.VestPrice, &g.IsVested, &g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGrantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return g, nil
}

// ListByOwner returns an owner's tranches ordered by grant date then vest date
func (r *GrantRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.StockGrant, error) {
	query := `
		SELECT id, owner, name, symbol, grant_date, vest_date, units, grant_price, vest_price, is_vested, created
		FROM stock_grant
		WHERE owner = $1
		ORDER BY grant_date ASC, vest_date ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grants: %w", err)
	}
	defer rows.Close()

	grants := []models.StockGrant{}
	for rows.Next() {
		var g models.StockGrant
		if err := rows.Scan(
			&g.ID, &g.OwnerID, &g.Name, &g.Symbol, &g.GrantDate, &g.VestDate, &g.Units, &g.GrantPrice, &g.VestPrice, &g.IsVested, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// Delete removes a tranche
func (r *GrantRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM stock_grant WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGrantNotFound
	}
	return nil
}
