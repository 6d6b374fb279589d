package model

// Stats holds the four dashboard KPI counts. Each count is fetched
// independently; a failed fetch leaves the value at zero and records the
// metric name in Errors rather than blocking the other counts.
type Stats struct {
	TotalAccounts     int64    `json:"total_accounts"`
	VerifiedMerchants int64    `json:"verified_merchants"`
	TotalListings     int64    `json:"total_listings"`
	PendingReports    int64    `json:"pending_reports"`
	Errors            []string `json:"errors,omitempty"`
	Synthetic         bool     `json:"synthetic,omitempty"`
}

// SeriesPoint is one ordered {label, value} pair of a breakdown series.
type SeriesPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Charts holds the three dashboard breakdown series.
type Charts struct {
	Registrations []SeriesPoint `json:"registrations"`
	Categories    []SeriesPoint `json:"categories"`
	Cities        []SeriesPoint `json:"cities"`
	Errors        []string      `json:"errors,omitempty"`
	Synthetic     bool          `json:"synthetic,omitempty"`
}

// Snapshot is the exported dashboard state: KPIs plus chart series, stamped
// with the export date.
type Snapshot struct {
	Date   string `json:"date"`
	Stats  Stats  `json:"stats"`
	Charts Charts `json:"charts"`
}
