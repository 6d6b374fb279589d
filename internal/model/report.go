package model

import "time"

// ReportStatus is the moderation state of a report. Dismissed and resolved
// are terminal.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportDismissed ReportStatus = "dismissed"
	ReportResolved  ReportStatus = "resolved"
)

// Report is an end-user complaint about a listing.
type Report struct {
	ID          string       `json:"id" db:"id"`
	ListingID   string       `json:"listing_id" db:"listing_id"`
	ReporterID  string       `json:"reporter_id" db:"reporter_id"`
	Reason      string       `json:"reason" db:"reason"`
	Description string       `json:"description" db:"description"`
	Status      ReportStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// ReportedListing carries the display fields of the reported listing joined
// onto a report. Nil on a ReportDetail means the listing was already deleted
// and the review surface should show a "listing not found" placeholder.
type ReportedListing struct {
	Title   string `json:"title"`
	Image   string `json:"image,omitempty"`
	OwnerID string `json:"owner_id"`
}

// Reporter identifies the account that filed a report, when it still exists.
type Reporter struct {
	Email string `json:"email"`
}

// ReportDetail is a pending report joined with its listing and reporter.
type ReportDetail struct {
	Report
	Listing  *ReportedListing `json:"listing,omitempty"`
	Reporter *Reporter        `json:"reporter,omitempty"`
}
