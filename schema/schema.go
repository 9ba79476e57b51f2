// Package schema has configs, models and shared types for all parts of flowspan.
package schema

import (
	"encoding/json"
	"time"
)

// StatusEvent is one observed field change for one issue, as exported from the
// tracker's changelog. Events for a single issue arrive in no particular order
// and may contain duplicates at the same instant.
type StatusEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
	Field      FieldKind `json:"field"`
	FromValue  string    `json:"from_value"`
	ToValue    string    `json:"to_value"`
}

// IssueHistory is the raw per-issue input supplied by a history provider:
// the issue's creation snapshot plus its observed field changes.
type IssueHistory struct {
	Key           string        `json:"key"`
	Summary       string        `json:"summary,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	InitialStatus string        `json:"initial_status"`
	InitialHealth string        `json:"initial_health,omitempty"`
	Events        []StatusEvent `json:"events"`
}

// StatusInterval is a derived half-open time range [Start, End) during which
// an issue held a constant status. Health carries the most recent health value
// at or before Start. A zero End means the interval is still open and "now"
// stands in downstream.
type StatusInterval struct {
	Status string    `json:"status"`
	Health string    `json:"health"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end,omitzero"`
}

// Open reports whether the interval has no recorded end.
func (si StatusInterval) Open() bool {
	return si.End.IsZero()
}

// EndOrNow returns the interval end, substituting now for open intervals.
func (si StatusInterval) EndOrNow(now time.Time) time.Time {
	if si.Open() {
		return now
	}
	return si.End
}

// PhaseBoundaries holds the first-occurrence timestamps that delimit the
// discovery and build phases for one issue. A zero value means the boundary
// was never reached.
type PhaseBoundaries struct {
	DiscoveryStart time.Time `json:"discovery_start,omitzero"`
	BuildStart     time.Time `json:"build_start,omitzero"`
	BuildEnd       time.Time `json:"build_end,omitzero"`
}

// CycleTimeResult holds the computed durations for one phase of one issue.
// CalendarWeeks >= ActiveWeeks >= 0 always holds.
type CycleTimeResult struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	CalendarWeeks float64   `json:"calendar_weeks"`
	ActiveWeeks   float64   `json:"active_weeks"`
	ExcludedWeeks float64   `json:"excluded_weeks"`

	// IsOpen is true when the phase's end boundary has not occurred yet
	// and End is the computation time instead.
	IsOpen bool `json:"is_open"`

	// Clamped flags a negative computed duration that was clamped to zero.
	// It signals a boundary-ordering anomaly in the input, not an error.
	Clamped bool `json:"clamped,omitempty"`
}

// IssueResult is the per-issue output record. Discovery or Build is nil when
// the issue never reached that phase's start boundary.
type IssueResult struct {
	Key        string           `json:"key"`
	Summary    string           `json:"summary,omitempty"`
	Boundaries PhaseBoundaries  `json:"boundaries"`
	Discovery  *CycleTimeResult `json:"discovery,omitempty"`
	Build      *CycleTimeResult `json:"build,omitempty"`
}

// Cycle returns the result for the given phase, or nil.
func (r *IssueResult) Cycle(phase Phase) *CycleTimeResult {
	if phase == BuildPhase {
		return r.Build
	}
	return r.Discovery
}

// IssueFailure records one issue whose computation failed. Failed issues are
// reported alongside successes and excluded from cohort aggregation.
type IssueFailure struct {
	Key string `json:"key"`
	Err error  `json:"-"`
}

// Reason returns the failure cause as a string for serialized output.
func (f IssueFailure) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// MarshalJSON includes the failure reason, which error values otherwise drop.
func (f IssueFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key    string `json:"key"`
		Reason string `json:"reason,omitempty"`
	}{Key: f.Key, Reason: f.Reason()})
}

// CohortSummary holds order statistics for one cohort and one duration series.
// Summaries are never emitted for empty cohorts.
type CohortSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// CohortTable maps completion quarters to their summaries.
type CohortTable map[Quarter]CohortSummary

// BatchResult is the full output of one analysis run over a batch of issues.
type BatchResult struct {
	Issues   []IssueResult                   `json:"issues"`
	Failures []IssueFailure                  `json:"failures,omitempty"`
	Cohorts  map[Phase]map[Series]CohortTable `json:"cohorts"`

	// Now is the computation time substituted for open phase boundaries.
	Now time.Time `json:"now"`
}
