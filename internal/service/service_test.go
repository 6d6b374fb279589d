package service

import (
	"context"
	"testing"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAccount(t *testing.T, s *store.Store, a model.Account) model.Account {
	t.Helper()
	if a.AccountType == "" {
		a.AccountType = model.AccountStandard
	}
	if a.VerificationStatus == "" {
		a.VerificationStatus = model.VerificationUnverified
	}
	if a.Status == "" {
		a.Status = model.StatusActive
	}
	if err := s.CreateAccount(context.Background(), &a); err != nil {
		t.Fatalf("CreateAccount(%s): %v", a.ID, err)
	}
	return a
}

func seedListing(t *testing.T, s *store.Store, l model.Listing) model.Listing {
	t.Helper()
	if l.Status == "" {
		l.Status = model.ListingActive
	}
	if err := s.CreateListing(context.Background(), &l); err != nil {
		t.Fatalf("CreateListing(%s): %v", l.ID, err)
	}
	return l
}

func seedReport(t *testing.T, s *store.Store, r model.Report) model.Report {
	t.Helper()
	if r.Status == "" {
		r.Status = model.ReportPending
	}
	if err := s.CreateReport(context.Background(), &r); err != nil {
		t.Fatalf("CreateReport(%s): %v", r.ID, err)
	}
	return r
}

func strPtr(v string) *string { return &v }
