package store

import (
	"context"
	"fmt"
)

// Migrate creates the marketplace tables when they do not exist. The managed
// backend owns the canonical schema; this bootstrap mirrors it for local
// development and tests (`backoffice db init`).
func (s *Store) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			account_type TEXT NOT NULL DEFAULT 'standard',
			verification_status TEXT NOT NULL DEFAULT 'unverified',
			rejection_reason TEXT,
			nni_number TEXT NOT NULL DEFAULT '',
			id_document_path TEXT,
			avatar_url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			images TEXT NOT NULL DEFAULT '[]',
			category TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			owner_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			listing_id TEXT NOT NULL,
			reporter_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS admin_roles (
			id INTEGER PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_accounts_verification
			ON accounts(verification_status)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_status
			ON reports(status)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_owner
			ON listings(owner_id)`,
	}

	for i, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
