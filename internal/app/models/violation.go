package models

import "fmt"

type ViolationKind string

const (
	// ViolationRunSequence: a run is not numbered 1..total without gaps.
	ViolationRunSequence ViolationKind = "run_sequence"
	// ViolationSingleShape: a single entry with total != 1 or progress outside {0,1}.
	ViolationSingleShape ViolationKind = "single_shape"
	// ViolationOverlappingRuns: a client holds more than one unfinished run.
	ViolationOverlappingRuns ViolationKind = "overlapping_runs"
	// ViolationProgressOverflow: sessions completed above total sessions.
	ViolationProgressOverflow ViolationKind = "progress_overflow"
	// ViolationRunSuccession: a finished run is followed by neither its queued
	// prepaid run nor a zeroed placeholder.
	ViolationRunSuccession ViolationKind = "run_succession"
)

// LedgerViolation is one broken consistency rule found by an audit.
type LedgerViolation struct {
	Kind     ViolationKind `json:"kind"`
	ClientID string        `json:"clientId"`
	EntryID  string        `json:"entryId,omitempty"`
	Detail   string        `json:"detail"`
}

func (v LedgerViolation) String() string {
	return fmt.Sprintf("%s client=%s entry=%s: %s", v.Kind, v.ClientID, v.EntryID, v.Detail)
}
