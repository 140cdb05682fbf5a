package model

import "fmt"

// RowError is a validation failure for one input row. Row numbers are
// 1-based and count the header row, matching spreadsheet conventions.
type RowError struct {
	Row     int    `json:"row"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// RowWarning is an advisory data-quality finding for one input row.
// Warnings never block ingestion.
type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w RowWarning) String() string {
	if w.Row == 0 {
		return w.Message
	}
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

// DataQualityReport summarizes one ingestion run. Built once per run,
// immutable afterwards.
type DataQualityReport struct {
	TotalRows int `json:"total_rows"`
	ValidRows int `json:"valid_rows"`
	// RowsWithExplanation counts rows carrying any explanation at all,
	// whether the overall one or a per-option one.
	RowsWithExplanation     int          `json:"rows_with_explanation"`
	RowsWithOptionExplained int          `json:"rows_with_option_explanations"`
	RowsWithMetadata        int          `json:"rows_with_metadata"`
	Errors                  []RowError   `json:"errors"`
	Warnings                []RowWarning `json:"warnings"`
	// Score is the aggregate quality metric, clamped to [0,100].
	Score float64 `json:"score"`
}

// SuccessRate returns valid/total, or 0 for an empty run.
func (r *DataQualityReport) SuccessRate() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.ValidRows) / float64(r.TotalRows)
}

// IsHighQuality reports whether the run meets the fixed high-quality bar:
// score >= 80, success rate >= 95%, and zero validation errors.
func (r *DataQualityReport) IsHighQuality() bool {
	return r.Score >= 80 && r.SuccessRate() >= 0.95 && len(r.Errors) == 0
}

// ImportResult is what an ingestion run reports back to the caller.
type ImportResult struct {
	Success  bool               `json:"success"`
	Inserted int                `json:"inserted"`
	Skipped  int                `json:"skipped"`
	Errors   []string           `json:"errors"`
	Warnings []string           `json:"warnings"`
	Report   *DataQualityReport `json:"report,omitempty"`
}
