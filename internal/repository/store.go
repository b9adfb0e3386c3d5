package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgx operations repositories need. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repository code runs inside and outside
// transactions.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store bundles the repositories behind a single port so multi-step
// transitions can run atomically via WithinTx.
type Store interface {
	Tickets() TicketRepository
	History() TicketHistoryRepository
	Comments() CommentRepository
	Attachments() AttachmentRepository
	Users() UserRepository
	Categories() CategoryRepository
	Sequences() SequenceRepository

	// WithinTx runs fn against a transaction-bound Store. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type postgresStore struct {
	pool *pgxpool.Pool
	db   DB

	tickets     TicketRepository
	history     TicketHistoryRepository
	comments    CommentRepository
	attachments AttachmentRepository
	users       UserRepository
	categories  CategoryRepository
	sequences   SequenceRepository
}

// NewPostgresStore builds a Store over a pgx connection pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return newStoreWithDB(pool, pool)
}

func newStoreWithDB(pool *pgxpool.Pool, db DB) *postgresStore {
	return &postgresStore{
		pool:        pool,
		db:          db,
		tickets:     NewTicketRepository(db),
		history:     NewTicketHistoryRepository(db),
		comments:    NewCommentRepository(db),
		attachments: NewAttachmentRepository(db),
		users:       NewUserRepository(db),
		categories:  NewCategoryRepository(db),
		sequences:   NewSequenceRepository(db),
	}
}

func (s *postgresStore) Tickets() TicketRepository         { return s.tickets }
func (s *postgresStore) History() TicketHistoryRepository  { return s.history }
func (s *postgresStore) Comments() CommentRepository       { return s.comments }
func (s *postgresStore) Attachments() AttachmentRepository { return s.attachments }
func (s *postgresStore) Users() UserRepository             { return s.users }
func (s *postgresStore) Categories() CategoryRepository    { return s.categories }
func (s *postgresStore) Sequences() SequenceRepository     { return s.sequences }

func (s *postgresStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		// already transaction-bound; reuse the current scope
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := newStoreWithDB(nil, tx)
	if err := fn(txStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
