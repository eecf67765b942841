// Package postgres implements repository.Repository on PostgreSQL through database/sql and the pgx driver.
// Every operation is a short sequence of single-statement writes; pair uniqueness is enforced by primary
// keys and counters move with atomic "x = x + n" updates, so no transactions are needed.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"notehub/internal/repository"
)

// Conn hands out the database handle, connecting on first use. *database.Lazy satisfies it.
type Conn interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// queryer is the statement surface shared by *sql.DB and *sql.Conn.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository is the PostgreSQL implementation of repository.Repository.
type Repository struct {
	conn  Conn
	now   func() time.Time
	newID func() string

	users   userTable
	notes   noteTable
	likes   likeTable
	ratings ratingTable
}

// Option customizes a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides how note ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// New builds the repository and its table accessors.
func New(conn Conn, opts ...Option) *Repository {
	r := &Repository{
		conn:  conn,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ repository.Repository = (*Repository)(nil)

func (r *Repository) db(ctx context.Context) (queryer, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w: %w", repository.ErrUnavailable, err)
	}
	return db, nil
}

// timestamp is the current time at the precision PostgreSQL stores.
func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// PostgreSQL error codes mapped to repository errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// classify maps driver errors onto the repository sentinels while keeping the original in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, repository.ErrConflict, err)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, repository.ErrNotFound, err)
		case codeCheckViolation:
			return fmt.Errorf("%s: %w: %w", op, repository.ErrInvalidInput, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	var connErr *pgconn.ConnectError
	var netErr *net.OpError
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &connErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, repository.ErrNotFound)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// nonEmptyPtr treats NULL and "" alike, matching model.UploaderOf.
func nonEmptyPtr(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}
