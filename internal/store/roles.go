package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
)

// GetGrantByEmail returns the administrative grant for an identity, or
// ErrNotFound when the identity is not an admin. This is the authorization
// check performed after the identity provider accepts the credentials.
func (s *Store) GetGrantByEmail(ctx context.Context, email string) (*model.AdminGrant, error) {
	var g model.AdminGrant
	q := s.rebind(`SELECT * FROM admin_roles WHERE email = ?`)
	if err := s.db.GetContext(ctx, &g, q, strings.ToLower(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin grant: %w", err)
	}
	return &g, nil
}

// ListGrants returns all administrative grants ordered by email.
func (s *Store) ListGrants(ctx context.Context) ([]model.AdminGrant, error) {
	var grants []model.AdminGrant
	if err := s.db.SelectContext(ctx, &grants, `SELECT * FROM admin_roles ORDER BY email`); err != nil {
		return nil, fmt.Errorf("list admin grants: %w", err)
	}
	return grants, nil
}

// GrantRole creates or replaces the administrative grant for an email.
func (s *Store) GrantRole(ctx context.Context, email, name string, role model.AdminRole) error {
	email = strings.ToLower(email)
	now := time.Now().UTC()

	// Update-then-insert keeps the statement portable across drivers.
	uq := s.rebind(`UPDATE admin_roles SET role = ?, name = ? WHERE email = ?`)
	result, err := s.db.ExecContext(ctx, uq, role, name, email)
	if err != nil {
		return fmt.Errorf("update admin grant: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	iq := s.rebind(`INSERT INTO admin_roles (email, name, role, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, iq, email, name, role, now); err != nil {
		return fmt.Errorf("insert admin grant: %w", err)
	}
	return nil
}

// RevokeRole removes the administrative grant for an email.
func (s *Store) RevokeRole(ctx context.Context, email string) error {
	q := s.rebind(`DELETE FROM admin_roles WHERE email = ?`)
	result, err := s.db.ExecContext(ctx, q, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("revoke admin grant: %w", err)
	}
	return oneRow(result, "revoke admin grant")
}
