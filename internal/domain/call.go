package domain

import "time"

// CallStatus enumerates lifecycle stages reported by the voice provider.
type CallStatus string

const (
	CallStatusRegistered CallStatus = "registered"
	CallStatusOngoing    CallStatus = "ongoing"
	CallStatusEnded      CallStatus = "ended"
	CallStatusError      CallStatus = "error"
)

// Sentinel values substituted for missing or unextractable data.
const (
	// FieldMissing marks a single field absent from an otherwise usable
	// snapshot.
	FieldMissing = "-"
	// FieldUnavailable marks every derived field when extraction fails as
	// a whole.
	FieldUnavailable = "Unavailable"
)

// CallRequest carries the parameters for placing one outbound call.
// Immutable once constructed.
type CallRequest struct {
	FromNumber       string            `json:"from_number"`
	ToNumber         string            `json:"to_number"`
	DynamicVariables map[string]string `json:"retell_llm_dynamic_variables,omitempty"`
}

// CallHandle identifies a created call. It is the sole key used for all
// subsequent provider operations.
type CallHandle struct {
	CallID string `json:"call_id"`
}

// CallCost aggregates the provider's billing view of a call.
type CallCost struct {
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	CombinedCost         float64 `json:"combined_cost"`
}

// CallAnalysis holds the provider's post-call analysis.
type CallAnalysis struct {
	CallSummary string `json:"call_summary"`
}

// CallStatusSnapshot is one point-in-time read of a call's remote state.
// Optional provider fields are pointers so absence survives the wire.
type CallStatusSnapshot struct {
	CallID              string         `json:"call_id"`
	AgentID             string         `json:"agent_id,omitempty"`
	CallStatus          CallStatus     `json:"call_status"`
	FromNumber          string         `json:"from_number,omitempty"`
	ToNumber            string         `json:"to_number,omitempty"`
	StartTimestamp      int64          `json:"start_timestamp,omitempty"`
	EndTimestamp        int64          `json:"end_timestamp,omitempty"`
	DisconnectionReason string         `json:"disconnection_reason,omitempty"`
	RecordingURL        *string        `json:"recording_url,omitempty"`
	PublicLogURL        *string        `json:"public_log_url,omitempty"`
	CallCost            *CallCost      `json:"call_cost,omitempty"`
	CallAnalysis        *CallAnalysis  `json:"call_analysis,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

// ScrubResult acknowledges that the remote record's sensitive fields were
// cleared.
type ScrubResult struct {
	CallID     string    `json:"call_id"`
	OptedOut   bool      `json:"opted_out"`
	ScrubbedAt time.Time `json:"scrubbed_at"`
}

// CallOutcome is the final product of one lifecycle run: the last
// successfully retrieved snapshot plus derived fields and artifact paths.
// Never mutated after the polling loop exits.
type CallOutcome struct {
	CallID        string              `json:"call_id"`
	Snapshot      *CallStatusSnapshot `json:"snapshot"`
	Fields        Fields              `json:"fields"`
	SnapshotPath  string              `json:"snapshot_path,omitempty"`
	RecordingPath string              `json:"recording_path,omitempty"`
	CallLogPath   string              `json:"call_log_path,omitempty"`
	TimedOut      bool                `json:"timed_out"`
	PollError     string              `json:"poll_error,omitempty"`
	Scrubbed      *ScrubResult        `json:"scrubbed,omitempty"`
}
