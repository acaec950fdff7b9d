// Package numbering issues sequential, persisted invoice numbers per
// prefix, like KMC-0001. Peek is read-only, Next commits an increment, and
// BumpTo reconciles the counter with externally edited numbers.
package numbering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// DefaultWidth is the zero-padded width of the numeric suffix.
const DefaultWidth = 4

const (
	createSQL = `CREATE TABLE IF NOT EXISTS invoice_sequences (
		prefix TEXT PRIMARY KEY,
		last BIGINT NOT NULL
	)`
	nextSQL = `INSERT INTO invoice_sequences (prefix, last) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last = invoice_sequences.last + 1
		RETURNING last`
	peekSQL = `SELECT last FROM invoice_sequences WHERE prefix = $1`
	bumpSQL = `INSERT INTO invoice_sequences (prefix, last) VALUES ($1, $2)
		ON CONFLICT (prefix) DO UPDATE
		SET last = GREATEST(invoice_sequences.last, EXCLUDED.last)`
)

// Store allocates numbers from a SQL-backed counter table. The increment is
// a single atomic upsert, so concurrent callers never observe the same
// number twice.
type Store struct {
	db    *sql.DB
	width int
}

// Open connects to the database named by dsn and ensures the counter table
// exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("numbering: open: %w", err)
	}
	s := NewStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, width: DefaultWidth}
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the counter table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("numbering: ensure schema: %w", err)
	}
	return nil
}

// Next commits the next number for prefix and returns it formatted, e.g.
// KMC-0001. Numbers are strictly increasing per prefix.
func (s *Store) Next(ctx context.Context, prefix string) (string, error) {
	var last int64
	if err := s.db.QueryRowContext(ctx, nextSQL, prefix).Scan(&last); err != nil {
		return "", fmt.Errorf("numbering: next %q: %w", prefix, err)
	}
	return Format(prefix, last, s.width), nil
}

// Peek returns the number Next would currently return, without committing
// an increment.
func (s *Store) Peek(ctx context.Context, prefix string) (string, error) {
	var last int64
	err := s.db.QueryRowContext(ctx, peekSQL, prefix).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		last = 0
	case err != nil:
		return "", fmt.Errorf("numbering: peek %q: %w", prefix, err)
	}
	return Format(prefix, last+1, s.width), nil
}

// BumpTo raises the counter for prefix to at least n, reconciling the
// sequence with a number edited outside the allocator. Lower values are
// no-ops.
func (s *Store) BumpTo(ctx context.Context, prefix string, n int64) error {
	if _, err := s.db.ExecContext(ctx, bumpSQL, prefix, n); err != nil {
		return fmt.Errorf("numbering: bump %q to %d: %w", prefix, n, err)
	}
	return nil
}

// Format renders a number as prefix plus a zero-padded suffix.
func Format(prefix string, n int64, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}
