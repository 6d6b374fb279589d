package service

import (
	"context"
	"errors"
	"testing"

	"github.com/chadmarket/backoffice/internal/model"
)

func directoryFixture() []model.Account {
	return []model.Account{
		{ID: "u1", FullName: "Alice Mahamat", Email: "alice@example.com",
			City: "N'Djamena", VerificationStatus: model.VerificationVerified},
		{ID: "u2", FullName: "Bob Deby", Email: "bob@example.com",
			City: "Moundou", VerificationStatus: model.VerificationUnverified},
		{ID: "u3", FullName: "Fatime Abakar", Email: "fatime.alice@example.com",
			City: "N'Djamena", VerificationStatus: model.VerificationPending},
	}
}

func ids(accounts []model.Account) []string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.ID
	}
	return out
}

func TestFilterAccounts(t *testing.T) {
	accounts := directoryFixture()

	tests := []struct {
		name   string
		filter DirectoryFilter
		want   []string
	}{
		{"empty filter keeps all", DirectoryFilter{}, []string{"u1", "u2", "u3"}},
		{"query matches name case-insensitively", DirectoryFilter{Query: "ALICE"}, []string{"u1", "u3"}},
		{"query matches email too", DirectoryFilter{Query: "bob@"}, []string{"u2"}},
		{"verified means fully verified only", DirectoryFilter{Status: "verified"}, []string{"u1"}},
		{"unverified includes pending", DirectoryFilter{Status: "unverified"}, []string{"u2", "u3"}},
		{"city is exact", DirectoryFilter{City: "N'Djamena"}, []string{"u1", "u3"}},
		{"all is no constraint", DirectoryFilter{Status: "all", City: "all"}, []string{"u1", "u2", "u3"}},
		{"all status composes with city", DirectoryFilter{Status: "all", City: "Moundou"}, []string{"u2"}},
		{"all city composes with the rest", DirectoryFilter{Query: "ali", Status: "verified", City: "all"}, []string{"u1"}},
		{"unknown status places no constraint", DirectoryFilter{Status: "bogus"}, []string{"u1", "u2", "u3"}},
		{"filters compose with AND", DirectoryFilter{Query: "alice", City: "N'Djamena", Status: "verified"}, []string{"u1"}},
		{"no match", DirectoryFilter{Query: "alice", City: "Moundou"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterAccounts(accounts, tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestListAppliesFilter(t *testing.T) {
	s := newTestStore(t)
	d := NewDirectory(s)
	ctx := context.Background()
	for _, a := range directoryFixture() {
		seedAccount(t, s, a)
	}

	got, err := d.List(ctx, DirectoryFilter{City: "Moundou"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "u2" {
		t.Fatalf("got %v, want only u2", ids(got))
	}
}

func TestBanIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	d := NewDirectory(s)
	ctx := context.Background()
	seedAccount(t, s, model.Account{ID: "u1", Email: "u1@example.com"})

	if err := d.Ban(ctx, "u1"); err != nil {
		t.Fatalf("Ban: %v", err)
	}
	account, err := s.GetAccount(ctx, "u1")
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if account.Status != model.StatusBanned {
		t.Fatalf("status after ban: %q", account.Status)
	}

	// Banning again is a no-op success.
	if err := d.Ban(ctx, "u1"); err != nil {
		t.Fatalf("second Ban: %v", err)
	}
}

func TestBanUnknownAccount(t *testing.T) {
	s := newTestStore(t)
	d := NewDirectory(s)

	err := d.Ban(context.Background(), "no-such-account")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Ban unknown account: got %v, want ErrNotFound", err)
	}
}
