package core

import (
	"github.com/flowspan/flowspan/schema"
)

// LocatePhases finds the first-occurrence boundaries for the discovery and
// build phases. Boundaries are never overwritten once found: a later
// regression into an earlier phase's status set does not move them, so the
// measurement is time-to-first-reach.
func LocatePhases(intervals []schema.StatusInterval, tax *schema.StatusTaxonomy) schema.PhaseBoundaries {
	var b schema.PhaseBoundaries

	for _, iv := range intervals {
		if b.DiscoveryStart.IsZero() && tax.IsDiscovery(iv.Status) {
			b.DiscoveryStart = iv.Start
		}
		if b.BuildStart.IsZero() && tax.IsBuild(iv.Status) {
			b.BuildStart = iv.Start
		}
		// Build end is the first completion at or after the build start.
		// An issue may enter build without ever visiting discovery, and a
		// completion before build never closes the build phase.
		if b.BuildEnd.IsZero() && !b.BuildStart.IsZero() &&
			!iv.Start.Before(b.BuildStart) && tax.IsCompletion(iv.Status) {
			b.BuildEnd = iv.Start
		}
	}

	return b
}
