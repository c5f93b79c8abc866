package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"log"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/config"
	"github.com/jengzang/securecheck/internal/models"
)

// Store owns the connection pool to traffic_logs and its SQL dialect
type Store struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
}

// Open opens the pool for cfg.DBDriver and pings it within cfg.QueryTimeout
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	dialect, err := DialectFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if cfg.DBDriver == config.DriverMySQL {
		dsn, err = mysqlDSN(cfg.DSN, cfg.QueryTimeout)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, models.ConnectionError(err, "failed to open %s store", cfg.DBDriver)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	store := &Store{db: db, dialect: dialect, timeout: cfg.QueryTimeout}
	if err := store.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Store initialized successfully: %s", cfg.DBDriver)
	return store, nil
}

// New wraps an already opened pool; used by tests and tools
func New(db *sql.DB, dialect Dialect, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{db: db, dialect: dialect, timeout: timeout}
}

// Dialect returns the SQL dialect of the store
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// DB returns the underlying pool
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks the store answers within the query timeout
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return models.ConnectionError(err, "failed to reach %s store", s.dialect.Name())
	}
	return nil
}

// Close closes the pool
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WithConn checks a connection out of the pool for the duration of fn.
// The context passed to fn carries the query timeout; the connection is
// returned to the pool when fn finishes.
func (s *Store) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return models.ConnectionError(err, "failed to acquire %s connection", s.dialect.Name())
	}
	defer conn.Close()

	err = fn(ctx, conn)
	switch {
	case err == nil, errors.Is(err, models.ErrConnection):
		return err
	case IsTimeout(ctx, err):
		return models.ConnectionError(err, "%s store did not answer within %v", s.dialect.Name(), s.timeout)
	case IsConnectionFailure(ctx, err):
		return models.ConnectionError(err, "lost %s connection", s.dialect.Name())
	}
	return err
}

// IsTimeout reports whether err stems from the context deadline
func IsTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// IsConnectionFailure reports whether err means the store was not reached:
// a deadline, a cancelled request, a dropped session or a network error.
func IsConnectionFailure(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if IsTimeout(ctx, err) || errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// mysqlDSN forces time parsing so DATETIME columns scan into time.Time
func mysqlDSN(dsn string, timeout time.Duration) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", models.ConnectionError(err, "invalid mysql dsn")
	}
	mc.ParseTime = true
	if mc.Timeout == 0 {
		mc.Timeout = timeout
	}
	if mc.ReadTimeout == 0 {
		mc.ReadTimeout = timeout
	}
	return mc.FormatDSN(), nil
}
