package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAccount(t *testing.T, s *Store, a model.Account) model.Account {
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

func strPtr(v string) *string { return &v }

func TestPendingVerificationsFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, model.Account{
		ID: "a1", Email: "with-doc@example.com",
		VerificationStatus: model.VerificationPending,
		IDDocumentPath:     strPtr("kyc/a1/id.png"),
	})
	// Pending but never submitted a document: not reviewable.
	seedAccount(t, s, model.Account{
		ID: "a2", Email: "no-doc@example.com",
		VerificationStatus: model.VerificationPending,
	})
	// Already decided.
	seedAccount(t, s, model.Account{
		ID: "a3", Email: "done@example.com",
		VerificationStatus: model.VerificationVerified,
		IDDocumentPath:     strPtr("kyc/a3/id.png"),
	})

	pending, err := s.ListPendingVerifications(ctx)
	if err != nil {
		t.Fatalf("ListPendingVerifications: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "a1" {
		t.Fatalf("pending set: got %+v, want only a1", pending)
	}
}

func TestApproveVerificationIsOneShot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, model.Account{
		ID: "a1", Email: "applicant@example.com",
		VerificationStatus: model.VerificationPending,
		IDDocumentPath:     strPtr("kyc/a1/id.png"),
	})

	if err := s.ApproveVerification(ctx, "a1"); err != nil {
		t.Fatalf("ApproveVerification: %v", err)
	}

	a, err := s.GetAccount(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if a.VerificationStatus != model.VerificationVerified {
		t.Errorf("status: got %q, want verified", a.VerificationStatus)
	}
	if a.AccountType != model.AccountMerchant {
		t.Errorf("account type: got %q, want merchant", a.AccountType)
	}

	// The terminal state cannot be decided again.
	if err := s.ApproveVerification(ctx, "a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second approve: got %v, want ErrNotFound", err)
	}
	if err := s.RejectVerification(ctx, "a1", "late"); !errors.Is(err, ErrNotFound) {
		t.Errorf("reject after approve: got %v, want ErrNotFound", err)
	}
}

func TestRejectVerificationKeepsReason(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, model.Account{
		ID: "a1", Email: "applicant@example.com",
		VerificationStatus: model.VerificationPending,
		IDDocumentPath:     strPtr("kyc/a1/id.png"),
	})

	if err := s.RejectVerification(ctx, "a1", "document unreadable"); err != nil {
		t.Fatalf("RejectVerification: %v", err)
	}
	a, _ := s.GetAccount(ctx, "a1")
	if a.VerificationStatus != model.VerificationRejected {
		t.Errorf("status: got %q, want rejected", a.VerificationStatus)
	}
	if a.RejectionReason == nil || *a.RejectionReason != "document unreadable" {
		t.Errorf("reason: got %v, want %q", a.RejectionReason, "document unreadable")
	}
	if a.AccountType != model.AccountStandard {
		t.Errorf("account type should stay standard, got %q", a.AccountType)
	}
}

func TestReportJoinWithMissingListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, model.Account{ID: "u1", Email: "reporter@example.com"})
	if err := s.CreateListing(ctx, &model.Listing{
		ID: "l1", Title: "iPhone 15 Pro Max", Images: []string{"img/1.png"},
		Category: "phones", City: "Moundou", Status: model.ListingActive, OwnerID: "u9",
	}); err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := s.CreateReport(ctx, &model.Report{
		ID: "r1", ListingID: "l1", ReporterID: "u1",
		Reason: "scam", Status: model.ReportPending,
		CreatedAt: time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	// Listing deleted independently before review.
	if err := s.CreateReport(ctx, &model.Report{
		ID: "r2", ListingID: "gone", ReporterID: "nobody",
		Reason: "spam", Status: model.ReportPending,
	}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}

	reports, err := s.ListPendingReports(ctx)
	if err != nil {
		t.Fatalf("ListPendingReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	// Newest first: r2 has the later created_at.
	if reports[0].ID != "r2" {
		t.Errorf("order: got %q first, want r2", reports[0].ID)
	}
	if reports[0].Listing != nil {
		t.Error("r2 should have no joined listing")
	}
	if reports[0].Reporter != nil {
		t.Error("r2 should have no joined reporter")
	}

	r1 := reports[1]
	if r1.Listing == nil || r1.Listing.Title != "iPhone 15 Pro Max" {
		t.Fatalf("r1 listing join: got %+v", r1.Listing)
	}
	if r1.Listing.Image != "img/1.png" {
		t.Errorf("r1 cover image: got %q", r1.Listing.Image)
	}
	if r1.Reporter == nil || r1.Reporter.Email != "reporter@example.com" {
		t.Errorf("r1 reporter join: got %+v", r1.Reporter)
	}
}

func TestResolvePendingReportIsOneShot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateReport(ctx, &model.Report{
		ID: "r1", ListingID: "l1", ReporterID: "u1",
		Reason: "spam", Status: model.ReportPending,
	}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}

	if err := s.ResolvePendingReport(ctx, "r1", model.ReportDismissed); err != nil {
		t.Fatalf("ResolvePendingReport: %v", err)
	}
	if err := s.ResolvePendingReport(ctx, "r1", model.ReportResolved); !errors.Is(err, ErrNotFound) {
		t.Errorf("second resolution: got %v, want ErrNotFound", err)
	}
}

func TestAdminGrants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetGrantByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing grant: got %v, want ErrNotFound", err)
	}

	if err := s.GrantRole(ctx, "Docs@Example.com", "Doc Reviewer", model.RoleModeratorDocs); err != nil {
		t.Fatalf("GrantRole: %v", err)
	}

	// Lookup is case-insensitive on email.
	g, err := s.GetGrantByEmail(ctx, "docs@example.com")
	if err != nil {
		t.Fatalf("GetGrantByEmail: %v", err)
	}
	if g.Role != model.RoleModeratorDocs {
		t.Errorf("role: got %q", g.Role)
	}

	// Re-granting replaces the role.
	if err := s.GrantRole(ctx, "docs@example.com", "Doc Reviewer", model.RoleSuperAdmin); err != nil {
		t.Fatalf("GrantRole update: %v", err)
	}
	g, _ = s.GetGrantByEmail(ctx, "docs@example.com")
	if g.Role != model.RoleSuperAdmin {
		t.Errorf("updated role: got %q", g.Role)
	}

	if err := s.RevokeRole(ctx, "docs@example.com"); err != nil {
		t.Fatalf("RevokeRole: %v", err)
	}
	if err := s.RevokeRole(ctx, "docs@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second revoke: got %v, want ErrNotFound", err)
	}
}

func TestCountsAndGroups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAccount(t, s, model.Account{
		ID: "u1", Email: "m@example.com",
		AccountType: model.AccountMerchant, VerificationStatus: model.VerificationVerified,
	})
	seedAccount(t, s, model.Account{ID: "u2", Email: "s@example.com"})

	for _, l := range []model.Listing{
		{ID: "l1", Title: "Car", Category: "auto", City: "Sarh", Status: model.ListingActive, OwnerID: "u1"},
		{ID: "l2", Title: "Phone", Category: "phones", City: "Sarh", Status: model.ListingActive, OwnerID: "u1"},
		{ID: "l3", Title: "Phone 2", Category: "phones", City: "Doba", Status: model.ListingActive, OwnerID: "u2"},
	} {
		listing := l
		if err := s.CreateListing(ctx, &listing); err != nil {
			t.Fatalf("CreateListing(%s): %v", l.ID, err)
		}
	}

	if n, _ := s.CountAccounts(ctx); n != 2 {
		t.Errorf("CountAccounts: got %d, want 2", n)
	}
	if n, _ := s.CountVerifiedMerchants(ctx); n != 1 {
		t.Errorf("CountVerifiedMerchants: got %d, want 1", n)
	}
	if n, _ := s.CountListings(ctx); n != 3 {
		t.Errorf("CountListings: got %d, want 3", n)
	}

	cats, err := s.ListingsByCategory(ctx)
	if err != nil {
		t.Fatalf("ListingsByCategory: %v", err)
	}
	if len(cats) != 2 || cats[0].Label != "phones" || cats[0].Value != 2 {
		t.Errorf("categories: got %+v", cats)
	}

	cities, err := s.ListingsByCity(ctx)
	if err != nil {
		t.Fatalf("ListingsByCity: %v", err)
	}
	if len(cities) != 2 || cities[0].Label != "Sarh" || cities[0].Value != 2 {
		t.Errorf("cities: got %+v", cities)
	}

	times, err := s.RegistrationTimes(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("RegistrationTimes: %v", err)
	}
	if len(times) != 2 {
		t.Errorf("RegistrationTimes: got %d, want 2", len(times))
	}
}
