package core

import (
	"math"
	"sort"

	"github.com/flowspan/flowspan/schema"
)

// Summarize computes the five-number summary for a non-empty duration series
// using linear interpolation between order statistics. For a single value all
// five statistics equal that value. The input slice is not modified.
func Summarize(values []float64) schema.CohortSummary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return schema.CohortSummary{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// quantile interpolates the p-th quantile of an ascending series. The rank
// for N elements, 0-indexed, is p*(N-1); fractional ranks interpolate between
// the neighboring order statistics.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
