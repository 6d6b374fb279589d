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

// reportRow is a pending report left-joined with its listing's display
// fields and the reporter's email. The joined columns are nullable: the
// listing may have been deleted independently and the reporter account may
// be gone.
type reportRow struct {
	ID          string         `db:"id"`
	ListingID   string         `db:"listing_id"`
	ReporterID  string         `db:"reporter_id"`
	Reason      string         `db:"reason"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	LTitle      sql.NullString `db:"l_title"`
	LImages     sql.NullString `db:"l_images"`
	LOwnerID    sql.NullString `db:"l_owner_id"`
	RepEmail    sql.NullString `db:"reporter_email"`
}

func (r reportRow) toModel() model.ReportDetail {
	d := model.ReportDetail{
		Report: model.Report{
			ID:          r.ID,
			ListingID:   r.ListingID,
			ReporterID:  r.ReporterID,
			Reason:      r.Reason,
			Description: r.Description,
			Status:      model.ReportStatus(r.Status),
			CreatedAt:   r.CreatedAt,
		},
	}
	if r.LOwnerID.Valid {
		var images []string
		if r.LImages.Valid && r.LImages.String != "" {
			// A malformed images column degrades to no cover image.
			_ = json.Unmarshal([]byte(r.LImages.String), &images)
		}
		image := ""
		if len(images) > 0 {
			image = images[0]
		}
		d.Listing = &model.ReportedListing{
			Title:   r.LTitle.String,
			Image:   image,
			OwnerID: r.LOwnerID.String,
		}
	}
	if r.RepEmail.Valid {
		d.Reporter = &model.Reporter{Email: r.RepEmail.String}
	}
	return d
}

const reportJoin = `SELECT r.id, r.listing_id, r.reporter_id, r.reason, r.description,
		r.status, r.created_at,
		l.title AS l_title, l.images AS l_images, l.owner_id AS l_owner_id,
		a.email AS reporter_email
	FROM reports r
	LEFT JOIN listings l ON l.id = r.listing_id
	LEFT JOIN accounts a ON a.id = r.reporter_id`

// ListPendingReports returns the moderation pending set, newest first, each
// report joined with its listing and reporter when they still exist.
func (s *Store) ListPendingReports(ctx context.Context) ([]model.ReportDetail, error) {
	var rows []reportRow
	q := s.rebind(reportJoin + ` WHERE r.status = ? ORDER BY r.created_at DESC`)
	if err := s.db.SelectContext(ctx, &rows, q, model.ReportPending); err != nil {
		return nil, fmt.Errorf("list pending reports: %w", err)
	}
	details := make([]model.ReportDetail, len(rows))
	for i, r := range rows {
		details[i] = r.toModel()
	}
	return details, nil
}

// GetReportDetail returns a single report with its joined listing/reporter.
func (s *Store) GetReportDetail(ctx context.Context, id string) (*model.ReportDetail, error) {
	var row reportRow
	q := s.rebind(reportJoin + ` WHERE r.id = ?`)
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	d := row.toModel()
	return &d, nil
}

// CreateReport inserts a report row. Used by local seeding and tests; the
// production table is populated by end users through the marketplace.
func (s *Store) CreateReport(ctx context.Context, r *model.Report) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	q := s.rebind(`INSERT INTO reports
		(id, listing_id, reporter_id, reason, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, q,
		r.ID, r.ListingID, r.ReporterID, r.Reason, r.Description, r.Status, r.CreatedAt); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// ResolvePendingReport transitions a pending report to a terminal status.
// Returns ErrNotFound when the report is missing or already decided, so the
// pending→terminal transition can only happen once.
func (s *Store) ResolvePendingReport(ctx context.Context, id string, to model.ReportStatus) error {
	q := s.rebind(`UPDATE reports SET status = ? WHERE id = ? AND status = ?`)
	result, err := s.db.ExecContext(ctx, q, to, id, model.ReportPending)
	if err != nil {
		return fmt.Errorf("resolve report: %w", err)
	}
	return oneRow(result, "resolve report")
}

// CountPendingReports returns the number of reports awaiting a decision.
func (s *Store) CountPendingReports(ctx context.Context) (int64, error) {
	var n int64
	q := s.rebind(`SELECT COUNT(*) FROM reports WHERE status = ?`)
	if err := s.db.GetContext(ctx, &n, q, model.ReportPending); err != nil {
		return 0, fmt.Errorf("count pending reports: %w", err)
	}
	return n, nil
}
