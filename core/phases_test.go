package core

import (
	"testing"
	"time"

	"github.com/flowspan/flowspan/schema"
	"github.com/stretchr/testify/assert"
)

func testTaxonomy() *schema.StatusTaxonomy {
	return &schema.StatusTaxonomy{
		DiscoveryStatuses:  []string{"02 Generative Discovery", "04 Problem Discovery", "05 Solution Discovery"},
		BuildStatus:        "06 Build",
		CompletionStatuses: []string{"07 Beta", "08 Live"},
		HoldStatuses:       []string{"01 Inbox", "03 Committed"},
		HoldHealth:         "On Hold",
	}
}

func closedInterval(status string, start, end time.Time) schema.StatusInterval {
	return schema.StatusInterval{Status: status, Start: start, End: end}
}

func TestLocatePhases(t *testing.T) {
	day := func(n int) time.Time { return tlBase.AddDate(0, 0, n) }

	cases := []struct {
		name      string
		intervals []schema.StatusInterval
		want      schema.PhaseBoundaries
	}{
		{
			name: "full lifecycle",
			intervals: []schema.StatusInterval{
				closedInterval("01 Inbox", day(0), day(2)),
				closedInterval("04 Problem Discovery", day(2), day(9)),
				closedInterval("06 Build", day(9), day(30)),
				{Status: "07 Beta", Start: day(30)},
			},
			want: schema.PhaseBoundaries{
				DiscoveryStart: day(2),
				BuildStart:     day(9),
				BuildEnd:       day(30),
			},
		},
		{
			name: "first occurrence wins on regression",
			intervals: []schema.StatusInterval{
				closedInterval("04 Problem Discovery", day(0), day(5)),
				closedInterval("06 Build", day(5), day(8)),
				closedInterval("05 Solution Discovery", day(8), day(12)),
				{Status: "06 Build", Start: day(12)},
			},
			want: schema.PhaseBoundaries{
				DiscoveryStart: day(0),
				BuildStart:     day(5),
			},
		},
		{
			name: "build without discovery",
			intervals: []schema.StatusInterval{
				closedInterval("06 Build", day(0), day(10)),
				{Status: "08 Live", Start: day(10)},
			},
			want: schema.PhaseBoundaries{
				BuildStart: day(0),
				BuildEnd:   day(10),
			},
		},
		{
			name: "completion before build does not close build",
			intervals: []schema.StatusInterval{
				closedInterval("07 Beta", day(0), day(3)),
				{Status: "06 Build", Start: day(3)},
			},
			want: schema.PhaseBoundaries{
				BuildStart: day(3),
			},
		},
		{
			name: "never leaves hold",
			intervals: []schema.StatusInterval{
				{Status: "01 Inbox", Start: day(0)},
			},
			want: schema.PhaseBoundaries{},
		},
	}

	tax := testTaxonomy()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LocatePhases(tc.intervals, tax)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestLocatePhasesCompletionAtBuildStart checks the at-or-after comparison:
// a completion interval starting exactly when build ends still closes it.
func TestLocatePhasesCompletionAtBuildStart(t *testing.T) {
	at := tlBase.AddDate(0, 0, 4)
	intervals := []schema.StatusInterval{
		closedInterval("06 Build", tlBase, at),
		{Status: "08 Live", Start: at},
	}

	b := LocatePhases(intervals, testTaxonomy())
	assert.Equal(t, tlBase, b.BuildStart)
	assert.Equal(t, at, b.BuildEnd)
}
