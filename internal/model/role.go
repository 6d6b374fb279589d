package model

import "time"

// AdminRole is the administrative role resolved at login. Immutable for the
// lifetime of a session.
type AdminRole string

const (
	RoleSuperAdmin    AdminRole = "super_admin"
	RoleModeratorDocs AdminRole = "moderator_docs"
	RoleModeratorAds  AdminRole = "moderator_ads"
	RoleAnalyst       AdminRole = "analyst"
)

// Valid reports whether r is one of the known administrative roles.
func (r AdminRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleModeratorDocs, RoleModeratorAds, RoleAnalyst:
		return true
	}
	return false
}

// Label returns the human-readable role name shown in the console.
func (r AdminRole) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleModeratorDocs:
		return "Document Moderator"
	case RoleModeratorAds:
		return "Listings Moderator"
	case RoleAnalyst:
		return "Analyst"
	}
	return string(r)
}

// Section identifies one of the console's screens.
type Section string

const (
	SectionDashboard     Section = "dashboard"
	SectionUsers         Section = "users"
	SectionVerifications Section = "verifications"
	SectionReports       Section = "reports"
)

// NavLink is a single entry in the role-filtered navigation.
type NavLink struct {
	Section Section `json:"section"`
	Name    string  `json:"name"`
	Path    string  `json:"path"`
}

// sections is the static, ordered section table. The dashboard is reachable
// by every role; the rest are gated per role.
var sections = []struct {
	link  NavLink
	roles []AdminRole
}{
	{
		link:  NavLink{Section: SectionDashboard, Name: "Dashboard", Path: "/"},
		roles: []AdminRole{RoleSuperAdmin, RoleModeratorDocs, RoleModeratorAds, RoleAnalyst},
	},
	{
		link:  NavLink{Section: SectionUsers, Name: "Users", Path: "/users"},
		roles: []AdminRole{RoleSuperAdmin},
	},
	{
		link:  NavLink{Section: SectionVerifications, Name: "Verifications", Path: "/verifications"},
		roles: []AdminRole{RoleSuperAdmin, RoleModeratorDocs},
	},
	{
		link:  NavLink{Section: SectionReports, Name: "Reports", Path: "/reports"},
		roles: []AdminRole{RoleSuperAdmin, RoleModeratorAds},
	},
}

// NavigationFor returns the ordered subset of sections the role may see.
// An empty or unknown role yields an empty navigation, not an error.
func NavigationFor(role AdminRole) []NavLink {
	links := make([]NavLink, 0, len(sections))
	for _, s := range sections {
		if roleIn(role, s.roles) {
			links = append(links, s.link)
		}
	}
	return links
}

// RoleAllowed reports whether role may access the given section.
func RoleAllowed(role AdminRole, section Section) bool {
	for _, s := range sections {
		if s.link.Section == section {
			return roleIn(role, s.roles)
		}
	}
	return false
}

func roleIn(role AdminRole, roles []AdminRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AdminGrant is a row of the admin_roles table: the second authorization
// check performed after the identity provider accepts the credentials.
type AdminGrant struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      AdminRole `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
