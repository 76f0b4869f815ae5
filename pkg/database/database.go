// Package database builds sql.DB connection pools with sane pool limits
// and connect-time retries.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Options struct {
	Driver          string
	DataSource      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type Option func(*Options)

func WithDriver(driver string) Option {
	return func(o *Options) { o.Driver = driver }
}

func WithDataSource(dsn string) Option {
	return func(o *Options) { o.DataSource = dsn }
}

func WithMaxOpenConns(count int) Option {
	return func(o *Options) { o.MaxOpenConns = count }
}

func WithMaxIdleConns(count int) Option {
	return func(o *Options) { o.MaxIdleConns = count }
}

func WithConnMaxLifetime(duration time.Duration) Option {
	return func(o *Options) { o.ConnMaxLifetime = duration }
}

func WithConnMaxIdleTime(duration time.Duration) Option {
	return func(o *Options) { o.ConnMaxIdleTime = duration }
}

// WithConnectTimeout bounds the total time spent retrying the initial ping.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *Options) { o.ConnectTimeout = d }
}

// New opens a connection pool using the provided options and verifies it
// with a ping, retrying with exponential backoff while the database comes
// up. The default target is an in-memory SQLite database.
func New(opts ...Option) (*sql.DB, error) {
	options := &Options{
		Driver:          "sqlite3",
		DataSource:      ":memory:",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnectTimeout:  15 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.Driver == "" {
		return nil, fmt.Errorf("database driver cannot be empty")
	}
	if options.DataSource == "" {
		return nil, fmt.Errorf("database data source cannot be empty")
	}

	// Each connection to a plain :memory: SQLite source is its own database,
	// so the pool must stay at a single connection.
	if options.Driver == "sqlite3" && strings.Contains(options.DataSource, ":memory:") {
		options.MaxOpenConns = 1
		options.MaxIdleConns = 1
	}

	db, err := sql.Open(options.Driver, options.DataSource)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", options.Driver, err)
	}

	db.SetMaxOpenConns(options.MaxOpenConns)
	db.SetMaxIdleConns(options.MaxIdleConns)
	db.SetConnMaxLifetime(options.ConnMaxLifetime)
	db.SetConnMaxIdleTime(options.ConnMaxIdleTime)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = options.ConnectTimeout

	if err := backoff.Retry(db.Ping, policy); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", options.Driver, err)
	}

	return db, nil
}
