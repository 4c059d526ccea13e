package model

import "time"

// ImportRecord is one persisted paste-import, stored by the history layer.
// The parsing core never creates these; only the CLI does, after the user
// accepts a parse.
type ImportRecord struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	SourceFormat string    `json:"source_format"`
	Confidence   float64   `json:"confidence"`
	RowCount     int       `json:"row_count"`
	Skipped      int       `json:"skipped"`
	AutoApplied  bool      `json:"auto_applied"`
	FixesApplied bool      `json:"fixes_applied"`
}
