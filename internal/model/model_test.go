package model

import (
	"testing"
	"time"
)

func TestNavigationForAnalyst(t *testing.T) {
	links := NavigationFor(RoleAnalyst)
	if len(links) != 1 {
		t.Fatalf("analyst navigation: got %d links, want 1", len(links))
	}
	if links[0].Section != SectionDashboard {
		t.Errorf("analyst navigation: got %q, want dashboard", links[0].Section)
	}
}

func TestNavigationForSuperAdmin(t *testing.T) {
	links := NavigationFor(RoleSuperAdmin)
	want := []Section{SectionDashboard, SectionUsers, SectionVerifications, SectionReports}
	if len(links) != len(want) {
		t.Fatalf("super_admin navigation: got %d links, want %d", len(links), len(want))
	}
	for i, s := range want {
		if links[i].Section != s {
			t.Errorf("link %d: got %q, want %q", i, links[i].Section, s)
		}
	}
}

func TestNavigationForModerators(t *testing.T) {
	tests := []struct {
		role AdminRole
		want []Section
	}{
		{RoleModeratorDocs, []Section{SectionDashboard, SectionVerifications}},
		{RoleModeratorAds, []Section{SectionDashboard, SectionReports}},
	}
	for _, tt := range tests {
		links := NavigationFor(tt.role)
		if len(links) != len(tt.want) {
			t.Errorf("%s: got %d links, want %d", tt.role, len(links), len(tt.want))
			continue
		}
		for i, s := range tt.want {
			if links[i].Section != s {
				t.Errorf("%s link %d: got %q, want %q", tt.role, i, links[i].Section, s)
			}
		}
	}
}

func TestNavigationForUnknownRole(t *testing.T) {
	if links := NavigationFor(""); len(links) != 0 {
		t.Errorf("empty role: got %d links, want 0", len(links))
	}
	if links := NavigationFor("intern"); len(links) != 0 {
		t.Errorf("unknown role: got %d links, want 0", len(links))
	}
}

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		role    AdminRole
		section Section
		want    bool
	}{
		{RoleSuperAdmin, SectionUsers, true},
		{RoleModeratorDocs, SectionVerifications, true},
		{RoleModeratorDocs, SectionReports, false},
		{RoleModeratorAds, SectionReports, true},
		{RoleModeratorAds, SectionUsers, false},
		{RoleAnalyst, SectionDashboard, true},
		{RoleAnalyst, SectionVerifications, false},
		{"", SectionDashboard, false},
	}
	for _, tt := range tests {
		if got := RoleAllowed(tt.role, tt.section); got != tt.want {
			t.Errorf("RoleAllowed(%q, %q): got %v, want %v", tt.role, tt.section, got, tt.want)
		}
	}
}

func TestAdminRoleValid(t *testing.T) {
	for _, r := range []AdminRole{RoleSuperAdmin, RoleModeratorDocs, RoleModeratorAds, RoleAnalyst} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if AdminRole("root").Valid() {
		t.Error("unknown role should not be valid")
	}
}

func TestSessionExpired(t *testing.T) {
	s := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if s.Expired() {
		t.Error("future expiry should not be expired")
	}
	s.ExpiresAt = time.Now().Add(-time.Minute)
	if !s.Expired() {
		t.Error("past expiry should be expired")
	}
}

func TestAccountHasDocument(t *testing.T) {
	var a Account
	if a.HasDocument() {
		t.Error("nil path should have no document")
	}
	empty := ""
	a.IDDocumentPath = &empty
	if a.HasDocument() {
		t.Error("empty path should have no document")
	}
	path := "kyc/u1/id_card.png"
	a.IDDocumentPath = &path
	if !a.HasDocument() {
		t.Error("non-empty path should have a document")
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("phones"); got != "Phones" {
		t.Errorf("phones: got %q", got)
	}
	if got := CategoryLabel("mystery"); got != "mystery" {
		t.Errorf("unknown key should fall back to itself, got %q", got)
	}
}
