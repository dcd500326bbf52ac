package sequence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps counters in the counters table.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PostgreSQL counter store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Increment upserts the counter row and returns the incremented value in one statement.
func (s *PGStore) Increment(ctx context.Context, category string) (int64, error) {
	var seq int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO counters (category, seq, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (category)
		DO UPDATE SET seq = counters.seq + 1, updated_at = now()
		RETURNING seq
	`, category).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Current reads the counter without modifying it.
func (s *PGStore) Current(ctx context.Context, category string) (int64, error) {
	var seq int64
	err := s.pool.QueryRow(ctx, `SELECT seq FROM counters WHERE category = $1`, category).Scan(&seq)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return seq, nil
}

var _ Store = (*PGStore)(nil)
