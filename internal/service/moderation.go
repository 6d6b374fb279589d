package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/store"
)

// Moderation is the listing-report review workflow. A pending report is
// either dismissed (listing stays up) or resolved by acting on the listing
// or its seller first and closing the report after the action succeeds.
type Moderation struct {
	store *store.Store
	busy  inflight
}

// NewModeration creates the report review workflow.
func NewModeration(st *store.Store) *Moderation {
	return &Moderation{store: st}
}

// ListPending returns open reports newest first, each joined with its
// reported listing and reporter when those still exist.
func (m *Moderation) ListPending(ctx context.Context) ([]model.ReportDetail, error) {
	return m.store.ListPendingReports(ctx)
}

// Dismiss closes the report without touching the listing.
func (m *Moderation) Dismiss(ctx context.Context, reportID string) error {
	if !m.busy.begin(reportID) {
		return ErrDecisionInFlight
	}
	defer m.busy.end(reportID)

	if err := m.store.ResolvePendingReport(ctx, reportID, model.ReportDismissed); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// DeleteListingAndResolve removes the reported listing, then closes the
// report. The deletion happens first; if it fails the report stays pending
// so the case is never silently closed with the listing still up.
func (m *Moderation) DeleteListingAndResolve(ctx context.Context, reportID string) error {
	if !m.busy.begin(reportID) {
		return ErrDecisionInFlight
	}
	defer m.busy.end(reportID)

	detail, err := m.store.GetReportDetail(ctx, reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if detail.Listing == nil {
		return fmt.Errorf("%w: reported listing no longer exists", ErrNotFound)
	}

	if err := m.store.DeleteListing(ctx, detail.ListingID); err != nil {
		return fmt.Errorf("%w: delete listing: %v", ErrUpdateFailed, err)
	}
	if err := m.store.ResolvePendingReport(ctx, reportID, model.ReportResolved); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// SuspendSellerAndResolve suspends the reported listing's owner, then closes
// the report. The suspension happens first; if it fails the report stays
// pending.
func (m *Moderation) SuspendSellerAndResolve(ctx context.Context, reportID string) error {
	if !m.busy.begin(reportID) {
		return ErrDecisionInFlight
	}
	defer m.busy.end(reportID)

	detail, err := m.store.GetReportDetail(ctx, reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if detail.Listing == nil {
		return fmt.Errorf("%w: reported listing no longer exists", ErrNotFound)
	}

	if err := m.store.SetAccountStatus(ctx, detail.Listing.OwnerID, model.StatusSuspended); err != nil {
		return fmt.Errorf("%w: suspend seller: %v", ErrUpdateFailed, err)
	}
	if err := m.store.ResolvePendingReport(ctx, reportID, model.ReportResolved); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}
