package api

import "encoding/json"

// MonthlyReportRequest is the payload for a monthly report run. Dates use
// the 2006-01-02 layout. Credentials carry the service-account key verbatim.
type MonthlyReportRequest struct {
	PropertyID  string          `json:"property_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Metrics     []string        `json:"metrics,omitempty"`
	Channel     string          `json:"channel,omitempty"`
	Credentials json.RawMessage `json:"credentials"`
}

// WeeklyReportRequest is the payload for a weekly comparison run over two
// explicit windows.
type WeeklyReportRequest struct {
	PropertyID    string          `json:"property_id"`
	ThisWeekStart string          `json:"this_week_start"`
	ThisWeekEnd   string          `json:"this_week_end"`
	PrevWeekStart string          `json:"prev_week_start"`
	PrevWeekEnd   string          `json:"prev_week_end"`
	Metrics       []string        `json:"metrics,omitempty"`
	Channels      []string        `json:"channels,omitempty"`
	Credentials   json.RawMessage `json:"credentials"`
}

// Metric is a catalog entry exposed to clients.
type Metric struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Error is the uniform error body.
type Error struct {
	Error string `json:"error"`
}
