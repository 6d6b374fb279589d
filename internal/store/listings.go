package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
)

// listingRow maps 1:1 to the listings table. The images column stores a
// JSON-encoded string array.
type listingRow struct {
	ID         string    `db:"id"`
	Title      string    `db:"title"`
	Price      float64   `db:"price"`
	ImagesJSON string    `db:"images"`
	Category   string    `db:"category"`
	City       string    `db:"city"`
	Status     string    `db:"status"`
	OwnerID    string    `db:"owner_id"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r listingRow) toModel() (model.Listing, error) {
	var images []string
	if r.ImagesJSON != "" && r.ImagesJSON != "[]" {
		if err := json.Unmarshal([]byte(r.ImagesJSON), &images); err != nil {
			return model.Listing{}, fmt.Errorf("unmarshal listing images: %w", err)
		}
	}
	return model.Listing{
		ID:        r.ID,
		Title:     r.Title,
		Price:     r.Price,
		Images:    images,
		Category:  r.Category,
		City:      r.City,
		Status:    model.ListingStatus(r.Status),
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
	}, nil
}

// GetListing returns a single listing by ID.
func (s *Store) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	var row listingRow
	q := s.rebind(`SELECT * FROM listings WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	l, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateListing inserts a listing row. Used by local seeding and tests.
func (s *Store) CreateListing(ctx context.Context, l *model.Listing) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	images, err := json.Marshal(l.Images)
	if err != nil {
		return fmt.Errorf("marshal listing images: %w", err)
	}
	q := s.rebind(`INSERT INTO listings
		(id, title, price, images, category, city, status, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, q,
		l.ID, l.Title, l.Price, string(images), l.Category, l.City, l.Status, l.OwnerID, l.CreatedAt); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// DeleteListing removes a listing. Returns ErrNotFound when the listing is
// already gone, which moderation treats as a failed first step.
func (s *Store) DeleteListing(ctx context.Context, id string) error {
	q := s.rebind(`DELETE FROM listings WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return oneRow(result, "delete listing")
}

// CountListings returns the total number of listings.
func (s *Store) CountListings(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM listings`); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

// groupCount is a {label, value} aggregation row.
type groupCount struct {
	Label string `db:"label"`
	Value int64  `db:"value"`
}

// ListingsByCategory returns listing counts grouped by category, largest
// group first.
func (s *Store) ListingsByCategory(ctx context.Context) ([]model.SeriesPoint, error) {
	return s.groupListings(ctx, "category")
}

// ListingsByCity returns listing counts grouped by city, largest group first.
func (s *Store) ListingsByCity(ctx context.Context) ([]model.SeriesPoint, error) {
	return s.groupListings(ctx, "city")
}

func (s *Store) groupListings(ctx context.Context, column string) ([]model.SeriesPoint, error) {
	// column is one of two fixed identifiers, never user input.
	q := fmt.Sprintf(`SELECT %s AS label, COUNT(*) AS value
		FROM listings GROUP BY %s ORDER BY value DESC, label`, column, column)
	var rows []groupCount
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("listings by %s: %w", column, err)
	}
	points := make([]model.SeriesPoint, len(rows))
	for i, r := range rows {
		points[i] = model.SeriesPoint{Label: r.Label, Value: r.Value}
	}
	return points, nil
}
