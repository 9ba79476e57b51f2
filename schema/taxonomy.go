package schema

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMissingConfiguration indicates a required status-set or marker value is
// absent. It is fatal to the whole batch: it signals a setup error, not a
// data error.
var ErrMissingConfiguration = errors.New("missing configuration")

// StatusTaxonomy maps the tracker's concrete status values onto the phase
// model. The concrete values are external configuration; the engine never
// hard-codes workflow identifiers.
type StatusTaxonomy struct {
	// DiscoveryStatuses are the statuses that open the discovery phase.
	DiscoveryStatuses []string `mapstructure:"discovery" json:"discovery"`

	// BuildStatus is the single status that opens the build phase.
	BuildStatus string `mapstructure:"build" json:"build"`

	// CompletionStatuses close the build phase (beta/live equivalents).
	CompletionStatuses []string `mapstructure:"completion" json:"completion"`

	// HoldStatuses are excluded from active duration in both phases.
	HoldStatuses []string `mapstructure:"hold" json:"hold"`

	// HoldHealth is the health marker that also excludes time from active
	// duration, independent of status.
	HoldHealth string `mapstructure:"hold_health" json:"hold_health"`
}

// HoldPolicy is the hold classification for one phase. The business rules use
// the same policy for discovery and build today, but the calculator accepts
// them independently.
type HoldPolicy struct {
	Statuses []string
	Health   string
}

// Validate reports ErrMissingConfiguration for any required field left unset.
// HoldStatuses and HoldHealth may each be empty, but not both.
func (t *StatusTaxonomy) Validate() error {
	if len(t.DiscoveryStatuses) == 0 {
		return fmt.Errorf("%w: discovery statuses", ErrMissingConfiguration)
	}
	if t.BuildStatus == "" {
		return fmt.Errorf("%w: build status", ErrMissingConfiguration)
	}
	if len(t.CompletionStatuses) == 0 {
		return fmt.Errorf("%w: completion statuses", ErrMissingConfiguration)
	}
	if len(t.HoldStatuses) == 0 && t.HoldHealth == "" {
		return fmt.Errorf("%w: hold statuses or hold health marker", ErrMissingConfiguration)
	}
	return nil
}

// IsDiscovery reports whether status is in the discovery set.
func (t *StatusTaxonomy) IsDiscovery(status string) bool {
	return slices.Contains(t.DiscoveryStatuses, status)
}

// IsBuild reports whether status is the build status.
func (t *StatusTaxonomy) IsBuild(status string) bool {
	return status == t.BuildStatus
}

// IsCompletion reports whether status is in the completion set.
func (t *StatusTaxonomy) IsCompletion(status string) bool {
	return slices.Contains(t.CompletionStatuses, status)
}

// HoldPolicyFor returns the hold policy applied to the given phase.
func (t *StatusTaxonomy) HoldPolicyFor(Phase) HoldPolicy {
	return HoldPolicy{Statuses: t.HoldStatuses, Health: t.HoldHealth}
}

// Held reports whether a sub-interval with the given status and health is
// excluded from active duration. Status and health conditions are OR'd, as
// the source business rules state.
func (p HoldPolicy) Held(status, health string) bool {
	if slices.Contains(p.Statuses, status) {
		return true
	}
	return p.Health != "" && health == p.Health
}
