package cash

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arthadash/artha/internal/domain"
)

// ErrNotFound indicates that the requested account or transaction does not exist.
var ErrNotFound = errors.New("cash record not found")

// Repository defines persistent storage for cash accounts and their
// transaction ledgers.
type Repository interface {
	GetAccounts(ctx context.Context) ([]domain.AccountSource, error)
	AddAccount(ctx context.Context, a domain.AccountSource) (domain.AccountSource, error)
	DeleteAccount(ctx context.Context, id string) error

	// GetTransactions returns ledger entries, newest first; an empty
	// sourceID returns the entries of every account.
	GetTransactions(ctx context.Context, sourceID string) ([]domain.CashTransaction, error)
	AddTransaction(ctx context.Context, t domain.CashTransaction) (domain.CashTransaction, error)
	UpdateTransaction(ctx context.Context, t domain.CashTransaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL cash repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) GetAccounts(ctx context.Context) ([]domain.AccountSource, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, type, currency FROM account_sources ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("getting accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.AccountSource
	for rows.Next() {
		var a domain.AccountSource
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Currency); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgRepository) AddAccount(ctx context.Context, a domain.AccountSource) (domain.AccountSource, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO account_sources (name, type, currency)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		a.Name, a.Type, a.Currency).Scan(&a.ID)
	if err != nil {
		return domain.AccountSource{}, fmt.Errorf("adding account %s: %w", a.Name, err)
	}
	return a, nil
}

func (r *PgRepository) DeleteAccount(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM account_sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting account %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) GetTransactions(ctx context.Context, sourceID string) ([]domain.CashTransaction, error) {
	query := `SELECT id, source_id, date, type, amount, COALESCE(notes, ''), COALESCE(performer, '')
	          FROM cash_transactions`
	args := []any{}
	if sourceID != "" {
		query += ` WHERE source_id = $1`
		args = append(args, sourceID)
	}
	query += ` ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting cash transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.CashTransaction
	for rows.Next() {
		var t domain.CashTransaction
		if err := rows.Scan(&t.ID, &t.SourceID, &t.Date, &t.Type,
			&t.Amount, &t.Notes, &t.Performer); err != nil {
			return nil, fmt.Errorf("scanning cash transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cash transactions: %w", err)
	}
	return txs, nil
}

func (r *PgRepository) AddTransaction(ctx context.Context, t domain.CashTransaction) (domain.CashTransaction, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO cash_transactions (source_id, date, type, amount, notes, performer)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		 RETURNING id`,
		t.SourceID, t.Date, t.Type, t.Amount, t.Notes, t.Performer).Scan(&t.ID)
	if err != nil {
		return domain.CashTransaction{}, fmt.Errorf("adding cash transaction: %w", err)
	}
	return t, nil
}

func (r *PgRepository) UpdateTransaction(ctx context.Context, t domain.CashTransaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cash_transactions
		 SET type = $2, amount = $3, notes = NULLIF($4, ''), performer = NULLIF($5, '')
		 WHERE id = $1`,
		t.ID, t.Type, t.Amount, t.Notes, t.Performer)
	if err != nil {
		return fmt.Errorf("updating cash transaction %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) DeleteTransaction(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cash_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting cash transaction %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
