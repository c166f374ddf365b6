// Package store opens the configured trip store and brings its schema up to
// date. It is the only package that knows about concrete drivers.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"github.com/pkordes/tripcanvas/internal/config"
	"github.com/pkordes/tripcanvas/internal/repo"
	"github.com/pkordes/tripcanvas/migrations"
	sqlitemigrations "github.com/pkordes/tripcanvas/migrations/sqlite"
)

// Store is an opened trip store. Trips is nil for the memory driver.
type Store struct {
	Trips repo.TripRepo
	close func()
}

// Close releases the store's connections. It is safe on a memory store.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the store named by cfg.StoreDriver and applies pending
// migrations.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory, "":
		logger.Info("using in-memory store; trips are lost on exit")
		return &Store{}, nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.SQLitePath, logger)
	}
	return nil, fmt.Errorf("store.Open: unknown driver %q", cfg.StoreDriver)
}

func openPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	// Use a plain *sql.DB for goose (it needs database/sql, not pgx pool).
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store.Open: postgres: %w", err)
	}
	defer db.Close()
	if err := Migrate(ctx, goose.DialectPostgres, db, migrations.FS, logger); err != nil {
		return nil, err
	}

	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store.Open: create pool: %w", err)
	}
	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store.Open: ping: %w", err)
	}
	logger.Info("database connection established", "driver", config.DriverPostgres)

	return &Store{Trips: repo.NewTripRepo(pool), close: pool.Close}, nil
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, goose.DialectSQLite3, db, sqlitemigrations.FS, logger); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("database connection established", "driver", config.DriverSQLite, "path", path)

	return &Store{Trips: repo.NewSQLiteTripRepo(db), close: func() { db.Close() }}, nil
}

// OpenSQLite opens (or creates) a SQLite database at path in WAL mode with a
// busy timeout and foreign keys enforced.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.OpenSQLite: open: %w", err)
	}

	// SQLite has a single writer, and the pragmas below are per connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store.OpenSQLite: %s: %w", pragma, err)
		}
	}
	return db, nil
}

// NewMigrator opens the database named by cfg and returns a goose provider
// over the migrations for its dialect, along with a func that closes the
// connection. The memory driver has no schema and is rejected.
func NewMigrator(ctx context.Context, cfg config.Config) (*goose.Provider, func(), error) {
	var (
		db      *sql.DB
		dialect goose.Dialect
		fsys    fs.FS
		err     error
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dialect, fsys = goose.DialectPostgres, migrations.FS
		if db, err = sql.Open("pgx", cfg.DatabaseURL); err == nil {
			err = db.PingContext(ctx)
		}
	case config.DriverSQLite:
		dialect, fsys = goose.DialectSQLite3, sqlitemigrations.FS
		db, err = OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("store.NewMigrator: driver %q has no schema", cfg.StoreDriver)
	}
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, fmt.Errorf("store.NewMigrator: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("store.NewMigrator: create goose provider: %w", err)
	}
	return provider, func() { db.Close() }, nil
}

// Migrate applies every pending migration in fsys.
func Migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS, logger *slog.Logger) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("store.Migrate: create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		var partial *goose.PartialError
		if errors.As(err, &partial) {
			return fmt.Errorf("store.Migrate: version %d: %w", partial.Failed.Source.Version, partial.Err)
		}
		return fmt.Errorf("store.Migrate: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
