package domain

import (
	"fmt"
	"strconv"
)

// Fields are the human-facing values derived from a snapshot. Absent data
// is represented by FieldMissing, never by an empty string.
type Fields struct {
	Duration     string `json:"duration"`
	Cost         string `json:"cost"`
	Summary      string `json:"summary"`
	RecordingURL string `json:"recording_url"`
	CallLogURL   string `json:"call_log_url"`
}

// UnavailableFields replaces every derived value at once when extraction
// fails as a unit.
func UnavailableFields() Fields {
	return Fields{
		Duration:     FieldUnavailable,
		Cost:         FieldUnavailable,
		Summary:      FieldUnavailable,
		RecordingURL: FieldUnavailable,
		CallLogURL:   FieldUnavailable,
	}
}

// DeriveFields extracts the summary values from a snapshot. It is a pure
// function: the same snapshot always yields the same fields. Each field
// defaults independently to FieldMissing when its source is absent; the
// only whole-extraction failure is an unusable (nil) snapshot.
func DeriveFields(snap *CallStatusSnapshot) (Fields, error) {
	if snap == nil {
		return Fields{}, fmt.Errorf("nil snapshot")
	}

	f := Fields{
		Duration:     FieldMissing,
		Cost:         FieldMissing,
		Summary:      FieldMissing,
		RecordingURL: FieldMissing,
		CallLogURL:   FieldMissing,
	}

	if snap.CallCost != nil {
		f.Duration = strconv.FormatFloat(snap.CallCost.TotalDurationSeconds, 'f', -1, 64)
		f.Cost = strconv.FormatFloat(snap.CallCost.CombinedCost, 'f', -1, 64)
	}
	if snap.CallAnalysis != nil && snap.CallAnalysis.CallSummary != "" {
		f.Summary = snap.CallAnalysis.CallSummary
	}
	if snap.RecordingURL != nil && *snap.RecordingURL != "" {
		f.RecordingURL = *snap.RecordingURL
	}
	if snap.PublicLogURL != nil && *snap.PublicLogURL != "" {
		f.CallLogURL = *snap.PublicLogURL
	}

	return f, nil
}
