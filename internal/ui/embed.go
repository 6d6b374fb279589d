package ui

import "embed"

// Static embeds the admin UI shells and their assets. The shells are thin:
// they read the session from /api/v1/session and build the navigation from
// the role the API reports.
//
//go:embed all:static
var Static embed.FS
