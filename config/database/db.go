package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rotisserie/eris"

	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Pool is either connected to a store or unconfigured. An unconfigured pool
// never touches the network; every use reports apperr.ErrConfigMissing.
type Pool struct {
	db      *sqlx.DB
	dialect Dialect
}

// ConnectOptions controls the startup ping.
type ConnectOptions struct {
	Attempts   int
	RetryDelay time.Duration
}

// Unconfigured returns the placeholder pool used when DATABASE_URL is absent.
func Unconfigured() *Pool {
	return &Pool{}
}

// NewPool wraps an already opened handle.
func NewPool(db *sqlx.DB, dialect Dialect) *Pool {
	return &Pool{db: db, dialect: dialect}
}

// Connect opens the store named by rawURL and pings it until it answers or
// the attempts run out.
func Connect(ctx context.Context, rawURL string, opts ConnectOptions) (*Pool, error) {
	dialect, dsn, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s connection", dialect.Driver)
	}
	db.SetMaxOpenConns(dialect.MaxOpenConns)
	db.SetMaxIdleConns(dialect.MaxOpenConns)

	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			logger.Sugar.Infof("Successfully connected to the %s database", dialect.Driver)
			return NewPool(db, dialect), nil
		}
		if i == attempts {
			break
		}
		logger.Sugar.Infof("Database connection failed, retrying in %s... (%v)", opts.RetryDelay, err)
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, eris.Wrap(ctx.Err(), "connecting to database")
		case <-time.After(opts.RetryDelay):
		}
	}

	_ = db.Close()
	return nil, eris.Wrapf(err, "could not connect to %s after %d attempts", redact(rawURL), attempts)
}

func (p *Pool) Configured() bool {
	return p != nil && p.db != nil
}

// DB returns the connected handle, or apperr.ErrConfigMissing.
func (p *Pool) DB() (*sqlx.DB, error) {
	if !p.Configured() {
		return nil, apperr.ErrConfigMissing
	}
	return p.db, nil
}

func (p *Pool) Dialect() Dialect {
	if p == nil {
		return Dialect{}
	}
	return p.dialect
}

func (p *Pool) Close() error {
	if !p.Configured() {
		return nil
	}
	return p.db.Close()
}
