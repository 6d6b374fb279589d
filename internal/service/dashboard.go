package service

import (
	"context"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
)

// registrationWindow is how far back the registrations chart looks.
const registrationWindow = 30 * 24 * time.Hour

// MetricsSource is what the dashboard reads. *store.Store satisfies it.
type MetricsSource interface {
	CountAccounts(ctx context.Context) (int64, error)
	CountVerifiedMerchants(ctx context.Context) (int64, error)
	CountListings(ctx context.Context) (int64, error)
	CountPendingReports(ctx context.Context) (int64, error)
	RegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	ListingsByCategory(ctx context.Context) ([]model.SeriesPoint, error)
	ListingsByCity(ctx context.Context) ([]model.SeriesPoint, error)
}

// Dashboard aggregates platform KPIs and chart series. Each metric is read
// independently so one failing query degrades a single number, not the whole
// page.
type Dashboard struct {
	metrics MetricsSource
	now     func() time.Time
}

// NewDashboard creates the dashboard aggregator.
func NewDashboard(metrics MetricsSource) *Dashboard {
	return &Dashboard{metrics: metrics, now: time.Now}
}

// Stats returns the four headline counts. Failed metrics are reported in
// Errors and left at zero; if every count fails the whole set is replaced
// with synthetic placeholder numbers and flagged as such.
func (d *Dashboard) Stats(ctx context.Context) model.Stats {
	var stats model.Stats
	failures := 0

	read := func(name string, f func(context.Context) (int64, error), dst *int64) {
		n, err := f(ctx)
		if err != nil {
			stats.Errors = append(stats.Errors, name+": "+err.Error())
			failures++
			return
		}
		*dst = n
	}

	read("accounts", d.metrics.CountAccounts, &stats.TotalAccounts)
	read("verified merchants", d.metrics.CountVerifiedMerchants, &stats.VerifiedMerchants)
	read("listings", d.metrics.CountListings, &stats.TotalListings)
	read("pending reports", d.metrics.CountPendingReports, &stats.PendingReports)

	if failures == 4 {
		stats.TotalAccounts = 150
		stats.VerifiedMerchants = 45
		stats.TotalListings = 320
		stats.PendingReports = 5
		stats.Synthetic = true
	}
	return stats
}

// Charts returns the registration trend over the last 30 days plus listing
// distributions by category and city. Series fail independently, like Stats.
func (d *Dashboard) Charts(ctx context.Context) model.Charts {
	var charts model.Charts
	failures := 0

	now := d.now().UTC()
	regs, err := d.metrics.RegistrationTimes(ctx, now.Add(-registrationWindow))
	if err != nil {
		charts.Errors = append(charts.Errors, "registrations: "+err.Error())
		failures++
	} else {
		charts.Registrations = bucketByDay(regs, now)
	}

	cats, err := d.metrics.ListingsByCategory(ctx)
	if err != nil {
		charts.Errors = append(charts.Errors, "categories: "+err.Error())
		failures++
	} else {
		for i := range cats {
			cats[i].Label = model.CategoryLabel(cats[i].Label)
		}
		charts.Categories = cats
	}

	cities, err := d.metrics.ListingsByCity(ctx)
	if err != nil {
		charts.Errors = append(charts.Errors, "cities: "+err.Error())
		failures++
	} else {
		charts.Cities = cities
	}

	if failures == 3 {
		charts.Registrations = syntheticRegistrations(now)
		charts.Categories = []model.SeriesPoint{
			{Label: "Auto", Value: 120},
			{Label: "Real Estate", Value: 85},
			{Label: "Phones", Value: 60},
		}
		charts.Cities = []model.SeriesPoint{
			{Label: "N'Djamena", Value: 180},
			{Label: "Moundou", Value: 70},
			{Label: "Sarh", Value: 40},
		}
		charts.Synthetic = true
	}
	return charts
}

// Snapshot bundles stats and charts with the report date, for exports.
func (d *Dashboard) Snapshot(ctx context.Context) model.Snapshot {
	return model.Snapshot{
		Date:   d.now().UTC().Format("2006-01-02"),
		Stats:  d.Stats(ctx),
		Charts: d.Charts(ctx),
	}
}

// bucketByDay counts registrations per calendar day over the 30 days ending
// at now, oldest day first. Labels use day/month, e.g. "02/01".
func bucketByDay(times []time.Time, now time.Time) []model.SeriesPoint {
	const days = 30
	counts := make(map[string]int64, days)
	for _, t := range times {
		counts[t.UTC().Format("02/01")]++
	}
	points := make([]model.SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		label := now.AddDate(0, 0, -i).Format("02/01")
		points = append(points, model.SeriesPoint{Label: label, Value: counts[label]})
	}
	return points
}

func syntheticRegistrations(now time.Time) []model.SeriesPoint {
	points := bucketByDay(nil, now)
	for i := range points {
		points[i].Value = int64(3 + (i*7)%9)
	}
	return points
}
