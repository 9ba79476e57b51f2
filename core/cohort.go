package core

import (
	"github.com/flowspan/flowspan/schema"
)

// AggregateCohorts groups completed phases by the calendar quarter of their
// end boundary and computes the five-number summary per cohort, independently
// for the calendar and active series. Open phases have no completion quarter
// and are excluded entirely; cohorts with zero members are omitted, never
// zero-filled.
func AggregateCohorts(issues []schema.IssueResult) map[schema.Phase]map[schema.Series]schema.CohortTable {
	type seriesValues struct {
		calendar []float64
		active   []float64
	}

	cohorts := make(map[schema.Phase]map[schema.Series]schema.CohortTable, len(schema.AllPhases))

	for _, phase := range schema.AllPhases {
		byQuarter := make(map[schema.Quarter]*seriesValues)

		for i := range issues {
			cycle := issues[i].Cycle(phase)
			if cycle == nil || cycle.IsOpen {
				continue
			}
			q := schema.QuarterOf(cycle.End)
			vals := byQuarter[q]
			if vals == nil {
				vals = &seriesValues{}
				byQuarter[q] = vals
			}
			vals.calendar = append(vals.calendar, cycle.CalendarWeeks)
			vals.active = append(vals.active, cycle.ActiveWeeks)
		}

		calendarTable := make(schema.CohortTable, len(byQuarter))
		activeTable := make(schema.CohortTable, len(byQuarter))
		for q, vals := range byQuarter {
			calendarTable[q] = Summarize(vals.calendar)
			activeTable[q] = Summarize(vals.active)
		}

		cohorts[phase] = map[schema.Series]schema.CohortTable{
			schema.CalendarSeries: calendarTable,
			schema.ActiveSeries:   activeTable,
		}
	}

	return cohorts
}
