package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
	"github.com/arthadash/artha/internal/history"
)

// ErrNotFound indicates that the requested asset or history entry does not exist.
var ErrNotFound = errors.New("asset not found")

// Repository defines persistent storage for assets and the portfolio
// history ledger. Storage failures surface unchanged to callers; there is
// no retry layer.
type Repository interface {
	GetAssets(ctx context.Context) ([]domain.Asset, error)
	AddAsset(ctx context.Context, a domain.Asset) (domain.Asset, error)
	UpdateAsset(ctx context.Context, a domain.Asset) error
	DeleteAsset(ctx context.Context, id string) error

	GetHistory(ctx context.Context, rangeDesc string) ([]domain.HistoryItem, error)
	AddSnapshot(ctx context.Context, value decimal.Decimal, at time.Time) error
	AddTransaction(ctx context.Context, item domain.HistoryItem) (domain.HistoryItem, error)
	UpdateTransaction(ctx context.Context, item domain.HistoryItem) error
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL asset repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, symbol, name, category, quantity, avg_price, current_price, currency
		 FROM assets ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("getting assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.ID, &a.Symbol, &a.Name, &a.Category,
			&a.Quantity, &a.AvgPrice, &a.CurrentPrice, &a.Currency); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return assets, nil
}

func (r *PgRepository) AddAsset(ctx context.Context, a domain.Asset) (domain.Asset, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO assets (symbol, name, category, quantity, avg_price, current_price, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		a.Symbol, a.Name, a.Category, a.Quantity, a.AvgPrice, a.CurrentPrice, a.Currency).
		Scan(&a.ID)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("adding asset %s: %w", a.Symbol, err)
	}
	return a, nil
}

func (r *PgRepository) UpdateAsset(ctx context.Context, a domain.Asset) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE assets
		 SET symbol = $2, name = $3, category = $4, quantity = $5,
		     avg_price = $6, current_price = $7, currency = $8
		 WHERE id = $1`,
		a.ID, a.Symbol, a.Name, a.Category, a.Quantity, a.AvgPrice, a.CurrentPrice, a.Currency)
	if err != nil {
		return fmt.Errorf("updating asset %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) DeleteAsset(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting asset %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) GetHistory(ctx context.Context, rangeDesc string) ([]domain.HistoryItem, error) {
	var ref time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT date FROM portfolio_history ORDER BY date DESC LIMIT 1`).Scan(&ref)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("getting history reference date: %w", err)
		}
		ref = time.Now()
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, date, value, type, amount, COALESCE(notes, ''), COALESCE(asset_id::text, '')
		 FROM portfolio_history ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("getting portfolio history: %w", err)
	}
	defer rows.Close()

	var items []domain.HistoryItem
	for rows.Next() {
		var it domain.HistoryItem
		if err := rows.Scan(&it.ID, &it.Date, &it.Value, &it.Type,
			&it.Amount, &it.Notes, &it.AssetID); err != nil {
			return nil, fmt.Errorf("scanning history item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return history.Filter(items, history.Resolve(rangeDesc, ref)), nil
}

func (r *PgRepository) AddSnapshot(ctx context.Context, value decimal.Decimal, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO portfolio_history (date, value, type, amount)
		 VALUES ($1, $2, $3, 0)`,
		at, value, domain.HistorySnapshot)
	if err != nil {
		return fmt.Errorf("adding history snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) AddTransaction(ctx context.Context, item domain.HistoryItem) (domain.HistoryItem, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO portfolio_history (date, value, type, amount, notes, asset_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, '')::uuid)
		 RETURNING id`,
		item.Date, item.Value, item.Type, item.Amount, item.Notes, item.AssetID).
		Scan(&item.ID)
	if err != nil {
		return domain.HistoryItem{}, fmt.Errorf("adding portfolio transaction: %w", err)
	}
	return item, nil
}

func (r *PgRepository) UpdateTransaction(ctx context.Context, item domain.HistoryItem) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE portfolio_history
		 SET type = $2, amount = $3, notes = NULLIF($4, ''), asset_id = NULLIF($5, '')::uuid
		 WHERE id = $1`,
		item.ID, item.Type, item.Amount, item.Notes, item.AssetID)
	if err != nil {
		return fmt.Errorf("updating portfolio transaction %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
