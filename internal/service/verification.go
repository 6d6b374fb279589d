package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/store"
)

// DocumentLinkTTL is the validity window of a signed identity-document link.
const DocumentLinkTTL = 60 * time.Second

// DocumentSigner issues time-boxed read links for private stored documents.
type DocumentSigner interface {
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// Verifications is the merchant KYC review workflow. Applications move from
// pending to one of the terminal states approved or rejected; a decided
// application leaves the pending set and cannot be decided again.
type Verifications struct {
	store  *store.Store
	signer DocumentSigner
	busy   inflight
}

// NewVerifications creates the KYC review workflow.
func NewVerifications(st *store.Store, signer DocumentSigner) *Verifications {
	return &Verifications{store: st, signer: signer}
}

// ListPending returns applicants awaiting review: accounts with a pending
// verification and a submitted identity document, newest first.
func (v *Verifications) ListPending(ctx context.Context) ([]model.Account, error) {
	return v.store.ListPendingVerifications(ctx)
}

// DocumentLink requests a time-boxed signed link for the applicant's
// identity document. Missing documents and signing failures both surface as
// ErrDocumentUnavailable so the review renders an explicit inaccessible
// state instead of a broken image.
func (v *Verifications) DocumentLink(ctx context.Context, accountID string) (string, error) {
	account, err := v.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if !account.HasDocument() {
		return "", ErrDocumentUnavailable
	}
	url, err := v.signer.SignedURL(ctx, *account.IDDocumentPath, DocumentLinkTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	return url, nil
}

// Approve marks the application verified and upgrades the account to
// merchant. A rejected mutation maps to ErrUpdateFailed and leaves the item
// in the pending set; a concurrent decision on the same account is refused
// with ErrDecisionInFlight.
func (v *Verifications) Approve(ctx context.Context, accountID string) error {
	if !v.busy.begin(accountID) {
		return ErrDecisionInFlight
	}
	defer v.busy.end(accountID)

	if err := v.store.ApproveVerification(ctx, accountID); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// Reject marks the application rejected with the reviewer's reason. A blank
// reason fails locally with ErrValidation before any backend call.
func (v *Verifications) Reject(ctx context.Context, accountID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	if !v.busy.begin(accountID) {
		return ErrDecisionInFlight
	}
	defer v.busy.end(accountID)

	if err := v.store.RejectVerification(ctx, accountID, reason); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}
