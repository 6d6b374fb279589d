package model

import "time"

// ListingStatus is the publication state of a classified ad.
type ListingStatus string

const (
	ListingActive ListingStatus = "active"
	ListingSold   ListingStatus = "sold"
	ListingPaused ListingStatus = "paused"
)

// Listing is a classified ad. Deleted as a side effect of report resolution.
type Listing struct {
	ID        string        `json:"id" db:"id"`
	Title     string        `json:"title" db:"title"`
	Price     float64       `json:"price" db:"price"`
	Images    []string      `json:"images"`
	Category  string        `json:"category" db:"category"`
	City      string        `json:"city" db:"city"`
	Status    ListingStatus `json:"status" db:"status"`
	OwnerID   string        `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// FirstImage returns the listing's cover image URL, or empty when none.
func (l *Listing) FirstImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}
