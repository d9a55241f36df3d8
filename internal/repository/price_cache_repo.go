package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/networth/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceCacheRepository is the database (L2) layer for quotes and FX rates
type PriceCacheRepository struct {
	pool *pgxpool.Pool
}

// NewPriceCacheRepository creates a new PriceCacheRepository
func NewPriceCacheRepository(pool *pgxpool.Pool) *PriceCacheRepository {
	return &PriceCacheRepository{pool: pool}
}

// GetCachedQuotes returns the quotes for symbols fetched within maxAge.
// Symbols without a fresh row are absent from the result.
func (r *PriceCacheRepository) GetCachedQuotes(ctx context.Context, symbols []string, maxAge time.Duration) (map[string]models.Quote, error) {
	result := make(map[string]models.Quote, len(symbols))
	if len(symbols) == 0 {
		return result, nil
	}

	query := `
		SELECT symbol, price, source, fetched_at
		FROM quote_cache
		WHERE symbol = ANY($1) AND fetched_at > $2
	`
	rows, err := r.pool.Query(ctx, query, symbols, time.Now().Add(-maxAge))
	if err != nil {
		return nil, fmt.Errorf("failed to query quote cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.Symbol, &q.Price, &q.Source, &q.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		result[q.Symbol] = q
	}
	return result, rows.Err()
}

// CacheQuotes upserts quotes in a single batch
func (r *PriceCacheRepository) CacheQuotes(ctx context.Context, quotes []models.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	query := `
		INSERT INTO quote_cache (symbol, price, source, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol) DO UPDATE
		SET price = EXCLUDED.price, source = EXCLUDED.source, fetched_at = EXCLUDED.fetched_at
	`

	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(query, q.Symbol, q.Price, q.Source, q.FetchedAt)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to cache quote: %w", err)
		}
	}
	return nil
}

// GetCachedFXRate retrieves a rate if it is fresh enough; nil when absent or stale.
func (r *PriceCacheRepository) GetCachedFXRate(ctx context.Context, pair string, maxAge time.Duration) (*models.FXRate, error) {
	query := `
		SELECT pair, rate, fetched_at
		FROM fx_rate_cache
		WHERE pair = $1 AND fetched_at > $2
	`
	fx := &models.FXRate{}
	err := r.pool.QueryRow(ctx, query, pair, time.Now().Add(-maxAge)).Scan(&fx.Pair, &fx.Rate, &fx.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached fx rate: %w", err)
	}
	return fx, nil
}

// CacheFXRate stores an exchange rate
func (r *PriceCacheRepository) CacheFXRate(ctx context.Context, fx *models.FXRate) error {
	query := `
		INSERT INTO fx_rate_cache (pair, rate, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (pair) DO UPDATE
		SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at
	`
	_, err := r.pool.Exec(ctx, query, fx.Pair, fx.Rate, fx.FetchedAt)
	return err
}
