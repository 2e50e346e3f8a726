package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/set-night/eventledger/internal/repository/sqlc"
)

// Store is the transaction boundary for every ledger operation. fn sees a
// Querier bound to one transaction; returning an error rolls it back.
type Store interface {
	InTx(ctx context.Context, fn func(q sqlc.Querier) error) error
}

// PgStore runs transactions against PostgreSQL. Row locks taken with the
// ...ForUpdate queries last until fn returns.
type PgStore struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, queries: sqlc.New(pool)}
}

func (s *PgStore) InTx(ctx context.Context, fn func(q sqlc.Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
