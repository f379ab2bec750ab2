package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/rental-catalog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Querier is the statement surface shared by the pool and a transaction.
// *pgxpool.Pool and pgx.Tx both satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a Querier that can also open transactions.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// readTxOptions gives a multi-statement read one snapshot.
var readTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// Store wraps the database handle shared by all repositories.
type Store struct {
	db  DB
	log zerolog.Logger
}

func NewStore(db DB, logger *zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: logger.With().Str("component", "store").Logger(),
	}
}

// InTx runs fn inside a transaction.
//
// The transaction commits only when fn returns nil. It is rolled back when
// fn returns an error or panics; a panic is re-raised after the rollback.
// fn's error is returned as is, begin and commit failures are classified
// through sqlerr.
func (s *Store) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return s.run(ctx, tx, fn)
}

// InReadTx runs fn in a read-only repeatable-read transaction, so every
// statement in fn sees the same snapshot on the same connection.
func (s *Store) InReadTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.db.BeginTx(ctx, readTxOptions)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return s.run(ctx, tx, fn)
}

func (s *Store) run(ctx context.Context, tx pgx.Tx, fn func(q Querier) error) error {
	defer func() {
		if p := recover(); p != nil {
			s.rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		s.rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

func (s *Store) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.log.Error().Err(err).Msg("transaction rollback failed")
	}
}
