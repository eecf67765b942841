package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"notehub/internal/config"
)

var (
	// ErrClosed is returned by Lazy once Close has been called.
	ErrClosed = errors.New("database: connection closed")
	// ErrIncompleteConfig means a required connection setting is empty.
	ErrIncompleteConfig = errors.New("database: incomplete config")
)

var sqlOpen = sql.Open

const pingTimeout = 5 * time.Second

// otelsql hands out a fresh driver name per Register call.
var driver struct {
	once sync.Once
	name string
	err  error
}

func driverName() (string, error) {
	driver.once.Do(func() {
		driver.name, driver.err = otelsql.Register("pgx",
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithSQLCommenter(true),
		)
	})
	return driver.name, driver.err
}

// BuildPostgresDSN renders c as a postgres:// url, e.g. postgres://notehub:secret@db:5432/notehub?sslmode=disable.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"host", c.Host}, {"port", c.Port}, {"user", c.User}, {"name", c.Name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(missing, ", "))
	}

	u := &url.URL{Scheme: "postgres", Host: c.Host + ":" + c.Port, Path: c.Name, User: url.User(c.User)}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String(), nil
}

func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}

// NewPostgres opens a traced connection pool for c and pings it. The pool is closed again if the ping fails.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}
	name, err := driverName()
	if err != nil {
		return nil, fmt.Errorf("register traced driver: %w", err)
	}

	db, err := sqlOpen(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	applyPool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s:%s: %w", c.Host, c.Port, err)
	}
	return db, nil
}

// OpenFunc establishes a verified connection.
type OpenFunc func(ctx context.Context) (*sql.DB, error)

// ConnectHook runs on every freshly opened connection before it is cached.
type ConnectHook func(ctx context.Context, db *sql.DB) error

// Lazy opens the database on first use and caches the handle for the life of the process.
// A failed attempt is not cached, so the next caller tries again.
type Lazy struct {
	mu        sync.Mutex
	open      OpenFunc
	onConnect ConnectHook
	db        *sql.DB
	closed    bool
}

// NewLazy returns a Lazy that connects through open. hook may be nil.
func NewLazy(open OpenFunc, hook ConnectHook) *Lazy {
	return &Lazy{open: open, onConnect: hook}
}

// Static wraps an already open handle.
func Static(db *sql.DB) *Lazy {
	return &Lazy{db: db}
}

// DB returns the cached handle, connecting first if needed.
func (l *Lazy) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.closed:
		return nil, ErrClosed
	case l.db != nil:
		return l.db, nil
	}

	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	if l.onConnect != nil {
		if err := l.onConnect(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	l.db = db
	return db, nil
}

// PingContext connects if needed and pings the database. It backs the readiness probe.
func (l *Lazy) PingContext(ctx context.Context) error {
	db, err := l.DB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the cached handle, if any. Later calls to DB fail with ErrClosed.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
