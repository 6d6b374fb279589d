package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
)

// ListAccounts returns all accounts, newest first.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	q := s.rebind(`SELECT * FROM accounts ORDER BY created_at DESC`)
	if err := s.db.SelectContext(ctx, &accounts, q); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccount returns a single account by ID.
func (s *Store) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	var a model.Account
	q := s.rebind(`SELECT * FROM accounts WHERE id = ?`)
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// CreateAccount inserts an account row. Used by local seeding and tests; the
// production table is populated by the marketplace itself at signup.
func (s *Store) CreateAccount(ctx context.Context, a *model.Account) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	q := s.rebind(`INSERT INTO accounts
		(id, email, full_name, city, account_type, verification_status, rejection_reason,
		 nni_number, id_document_path, avatar_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q,
		a.ID, a.Email, a.FullName, a.City, a.AccountType, a.VerificationStatus,
		a.RejectionReason, a.NNINumber, a.IDDocumentPath, a.AvatarURL, a.Status, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// ListPendingVerifications returns the KYC pending set: accounts awaiting a
// decision that have submitted an identity document, newest first.
func (s *Store) ListPendingVerifications(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	q := s.rebind(`SELECT * FROM accounts
		WHERE verification_status = ?
		  AND id_document_path IS NOT NULL AND id_document_path != ''
		ORDER BY created_at DESC`)
	if err := s.db.SelectContext(ctx, &accounts, q, model.VerificationPending); err != nil {
		return nil, fmt.Errorf("list pending verifications: %w", err)
	}
	return accounts, nil
}

// ApproveVerification marks a pending application verified and upgrades the
// account to merchant. Returns ErrNotFound when no pending application
// matches, so a decision can never be applied twice.
func (s *Store) ApproveVerification(ctx context.Context, id string) error {
	q := s.rebind(`UPDATE accounts
		SET verification_status = ?, account_type = ?, rejection_reason = NULL
		WHERE id = ? AND verification_status = ?`)
	result, err := s.db.ExecContext(ctx, q,
		model.VerificationVerified, model.AccountMerchant, id, model.VerificationPending)
	if err != nil {
		return fmt.Errorf("approve verification: %w", err)
	}
	return oneRow(result, "approve verification")
}

// RejectVerification marks a pending application rejected with the reviewer's
// reason. Same no-double-decision guard as ApproveVerification.
func (s *Store) RejectVerification(ctx context.Context, id, reason string) error {
	q := s.rebind(`UPDATE accounts
		SET verification_status = ?, rejection_reason = ?
		WHERE id = ? AND verification_status = ?`)
	result, err := s.db.ExecContext(ctx, q,
		model.VerificationRejected, reason, id, model.VerificationPending)
	if err != nil {
		return fmt.Errorf("reject verification: %w", err)
	}
	return oneRow(result, "reject verification")
}

// SetAccountStatus transitions an account's moderation status (suspend, ban).
func (s *Store) SetAccountStatus(ctx context.Context, id string, status model.AccountStatus) error {
	q := s.rebind(`UPDATE accounts SET status = ? WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return fmt.Errorf("set account status: %w", err)
	}
	return oneRow(result, "set account status")
}

// CountAccounts returns the total number of registered accounts.
func (s *Store) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM accounts`); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// CountVerifiedMerchants returns the number of verified merchant accounts.
func (s *Store) CountVerifiedMerchants(ctx context.Context) (int64, error) {
	var n int64
	q := s.rebind(`SELECT COUNT(*) FROM accounts
		WHERE account_type = ? AND verification_status = ?`)
	if err := s.db.GetContext(ctx, &n, q, model.AccountMerchant, model.VerificationVerified); err != nil {
		return 0, fmt.Errorf("count verified merchants: %w", err)
	}
	return n, nil
}

// RegistrationTimes returns the creation timestamps of accounts registered
// since the given instant. The dashboard buckets them per day; the raw
// timestamp fetch keeps the query portable across drivers.
func (s *Store) RegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	var rows []struct {
		CreatedAt time.Time `db:"created_at"`
	}
	q := s.rebind(`SELECT created_at FROM accounts WHERE created_at >= ? ORDER BY created_at`)
	if err := s.db.SelectContext(ctx, &rows, q, since); err != nil {
		return nil, fmt.Errorf("registration times: %w", err)
	}
	times := make([]time.Time, len(rows))
	for i, r := range rows {
		times[i] = r.CreatedAt
	}
	return times, nil
}

// oneRow converts a zero-row update into ErrNotFound.
func oneRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
