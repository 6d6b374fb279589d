package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Store reads and mutates the marketplace tables the backend owns: accounts,
// listings, reports, and admin_roles. In production it connects to the
// managed Postgres instance with the service role; tests and local
// development use in-memory SQLite. All queries are written with `?`
// placeholders and rebound per driver.
type Store struct {
	db *sqlx.DB
}

// Open connects to the marketplace database. Supported drivers are
// "postgres" (pgx) and "sqlite".
func Open(driver, dsn string) (*Store, error) {
	name := driver
	if driver == "postgres" {
		name = "pgx"
	}
	db, err := sqlx.Connect(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory SQLite store with the schema bootstrapped.
// Used by tests and by `backoffice serve --dev` without a configured DSN.
func OpenMemory() (*Store, error) {
	s, err := Open("sqlite", ":memory:?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(context.Background()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks database connectivity, used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind translates `?` placeholders to the connected driver's style.
func (s *Store) rebind(q string) string {
	return s.db.Rebind(q)
}
