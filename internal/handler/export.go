package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/service"
)

// ExportHandler renders the dashboard snapshot as a downloadable report.
type ExportHandler struct {
	dashboard *service.Dashboard
}

// NewExportHandler creates the dashboard export handler.
func NewExportHandler(dashboard *service.Dashboard) *ExportHandler {
	return &ExportHandler{dashboard: dashboard}
}

// Export writes the current dashboard snapshot in the requested format:
// json (default), csv, or xlsx.
// GET /api/v1/dashboard/export?format=xlsx
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Snapshot(r.Context())
	format := queryString(r, "format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		w.Header().Set("Content-Disposition", attachment(snap.Date, "json"))
		writeJSON(w, http.StatusOK, snap)
	case "csv":
		h.exportCSV(w, snap)
	case "xlsx":
		h.exportXLSX(w, snap)
	default:
		writeError(w, http.StatusBadRequest, "Unknown export format: "+format)
	}
}

func (h *ExportHandler) exportCSV(w http.ResponseWriter, snap model.Snapshot) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(snap.Date, "csv"))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"section", "label", "value"})
	for _, row := range statRows(snap.Stats) {
		cw.Write([]string{"stats", row.label, strconv.FormatInt(row.value, 10)})
	}
	for _, series := range chartSeries(snap.Charts) {
		for _, p := range series.points {
			cw.Write([]string{series.name, p.Label, strconv.FormatInt(p.Value, 10)})
		}
	}
}

func (h *ExportHandler) exportXLSX(w http.ResponseWriter, snap model.Snapshot) {
	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	f.SetSheetName(f.GetSheetName(0), overview)
	f.SetCellValue(overview, "A1", "Report date")
	f.SetCellValue(overview, "B1", snap.Date)
	for i, row := range statRows(snap.Stats) {
		cell := i + 3
		f.SetCellValue(overview, fmt.Sprintf("A%d", cell), row.label)
		f.SetCellValue(overview, fmt.Sprintf("B%d", cell), row.value)
	}
	if snap.Stats.Synthetic {
		f.SetCellValue(overview, "A8", "Placeholder data, backend unreachable")
	}

	for _, series := range chartSeries(snap.Charts) {
		if _, err := f.NewSheet(series.sheet); err != nil {
			continue
		}
		f.SetCellValue(series.sheet, "A1", "Label")
		f.SetCellValue(series.sheet, "B1", "Value")
		for i, p := range series.points {
			f.SetCellValue(series.sheet, fmt.Sprintf("A%d", i+2), p.Label)
			f.SetCellValue(series.sheet, fmt.Sprintf("B%d", i+2), p.Value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(snap.Date, "xlsx"))
	if err := f.Write(w); err != nil {
		// Headers are out already; nothing left to do but log upstream.
		return
	}
}

func attachment(date, ext string) string {
	return fmt.Sprintf(`attachment; filename="dashboard-%s.%s"`, date, ext)
}

type statRow struct {
	label string
	value int64
}

func statRows(stats model.Stats) []statRow {
	return []statRow{
		{"Total accounts", stats.TotalAccounts},
		{"Verified merchants", stats.VerifiedMerchants},
		{"Total listings", stats.TotalListings},
		{"Pending reports", stats.PendingReports},
	}
}

type chartSection struct {
	name   string
	sheet  string
	points []model.SeriesPoint
}

func chartSeries(charts model.Charts) []chartSection {
	return []chartSection{
		{"registrations", "Registrations", charts.Registrations},
		{"categories", "Categories", charts.Categories},
		{"cities", "Cities", charts.Cities},
	}
}
