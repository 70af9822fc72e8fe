package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"jupkit/internal/journal"
)

// Store implements journal.Store using PostgreSQL.
type Store struct {
	pool *Pool
}

func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Open connects, migrates and returns a ready store.
func Open(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	pool, err := NewPool(ctx, dsn, maxConns)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewStore(pool), nil
}

var _ journal.Store = (*Store)(nil)

const selectColumns = `id, kind, wallet, mint, COALESCE(signature, ''), amount::text, status, error, created_at, updated_at`

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Record inserts e. Returns ErrDuplicateKey if the signature exists.
func (s *Store) Record(ctx context.Context, e *journal.Entry) error {
	if err := journal.Validate(e); err != nil {
		return err
	}
	query := `
		INSERT INTO journal_entries (kind, wallet, mint, signature, amount, status, error)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := s.pool.QueryRow(ctx, query,
		string(e.Kind),
		e.Wallet,
		e.Mint,
		nullable(e.Signature),
		strconv.FormatUint(e.Amount, 10),
		string(e.Status),
		e.Error,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return journal.ErrDuplicateKey
		}
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, signature string, status journal.Status, errMsg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE journal_entries SET status = $2, error = $3, updated_at = now() WHERE signature = $1`,
		signature, string(status), errMsg,
	)
	if err != nil {
		return fmt.Errorf("update journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, signature string) (*journal.Entry, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM journal_entries WHERE signature = $1`, signature)
	e, err := scanEntry(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, journal.ErrNotFound
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return e, nil
}

func (s *Store) ListByWallet(ctx context.Context, wallet string, limit int) ([]*journal.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM journal_entries WHERE wallet = $1 ORDER BY id DESC`
	args := []interface{}{wallet}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var result []*journal.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *Store) Close() {
	s.pool.Close()
}

func scanEntry(row pgx.Row) (*journal.Entry, error) {
	var (
		e      journal.Entry
		kind   string
		status string
		amount string
	)
	if err := row.Scan(&e.ID, &kind, &e.Wallet, &e.Mint, &e.Signature, &amount, &status, &e.Error, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	v, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.Kind = journal.Kind(kind)
	e.Status = journal.Status(status)
	e.Amount = v
	return &e, nil
}
