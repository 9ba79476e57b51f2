package core

import (
	"time"

	"github.com/flowspan/flowspan/schema"
)

const hoursPerWeek = 24 * 7

// weeksBetween returns the elapsed time from start to end in fractional weeks.
func weeksBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / hoursPerWeek
}

// MeasurePhase computes calendar and active durations for one phase window.
// The caller resolves the end boundary: the phase's actual end, or the
// computation time with open=true when the end boundary was never reached.
//
// Time is excluded from the active duration when a sub-interval's status is
// in the hold set or its health equals the hold marker. The conditions are
// OR'd; this mirrors the source business rules even where status and health
// disagree.
func MeasurePhase(intervals []schema.StatusInterval, start, end time.Time, open bool, policy schema.HoldPolicy, now time.Time) schema.CycleTimeResult {
	result := schema.CycleTimeResult{
		Start:  start,
		End:    end,
		IsOpen: open,
	}

	result.CalendarWeeks = weeksBetween(start, end)
	if result.CalendarWeeks < 0 {
		// Boundary-ordering anomaly in the input. Clamp and flag rather
		// than fail; the batch carries on.
		result.CalendarWeeks = 0
		result.Clamped = true
	}

	for _, iv := range intervals {
		clipStart := iv.Start
		if clipStart.Before(start) {
			clipStart = start
		}
		clipEnd := iv.EndOrNow(now)
		if clipEnd.After(end) {
			clipEnd = end
		}
		if !clipEnd.After(clipStart) {
			continue
		}
		if policy.Held(iv.Status, iv.Health) {
			result.ExcludedWeeks += weeksBetween(clipStart, clipEnd)
		}
	}

	result.ActiveWeeks = result.CalendarWeeks - result.ExcludedWeeks
	if result.ActiveWeeks < 0 {
		result.ActiveWeeks = 0
	}

	return result
}
