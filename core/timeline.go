// Package core has the cycle-time engine: timeline reconstruction, phase
// location, duration measurement and cohort aggregation.
package core

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/flowspan/flowspan/schema"
)

// ErrMalformedHistory indicates events inconsistent with the issue's stated
// creation boundary. It is fatal to that one issue's result and non-fatal to
// the batch.
var ErrMalformedHistory = errors.New("malformed history")

// BuildTimeline converts one issue's unsorted event log into an ordered,
// non-overlapping interval list starting at the issue's creation time. The
// last interval stays open (zero End); consumers substitute the computation
// time. A new interval opens whenever status or health changes; the other
// dimension is carried forward.
func BuildTimeline(hist schema.IssueHistory) ([]schema.StatusInterval, error) {
	events := make([]schema.StatusEvent, len(hist.Events))
	copy(events, hist.Events)

	// Stable sort so that later-supplied events stay last within a tie;
	// the tie-break below makes them authoritative.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})

	if len(events) > 0 && events[0].OccurredAt.Before(hist.CreatedAt) {
		return nil, fmt.Errorf("%w: event at %s precedes issue creation at %s",
			ErrMalformedHistory,
			events[0].OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
			hist.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}

	events = collapseSimultaneous(events)

	intervals := []schema.StatusInterval{{
		Status: hist.InitialStatus,
		Health: hist.InitialHealth,
		Start:  hist.CreatedAt,
	}}

	for _, ev := range events {
		cur := &intervals[len(intervals)-1]

		next := *cur
		switch ev.Field {
		case schema.HealthField:
			next.Health = ev.ToValue
		default:
			next.Status = ev.ToValue
		}

		// Repeated values collapse into the open interval.
		if next.Status == cur.Status && next.Health == cur.Health {
			continue
		}

		if ev.OccurredAt.Equal(cur.Start) {
			// Change at the open interval's own start: rewrite in place
			// rather than emit a zero-width interval.
			next.Start = cur.Start
			*cur = next
			continue
		}

		cur.End = ev.OccurredAt
		next.Start = ev.OccurredAt
		next.End = time.Time{}
		intervals = append(intervals, next)
	}

	return intervals, nil
}

// collapseSimultaneous keeps only the last event per (timestamp, field) pair.
// Duplicate events at the same instant are a known artifact of externally
// supplied change logs; last-write-wins is the documented tie-break.
func collapseSimultaneous(events []schema.StatusEvent) []schema.StatusEvent {
	if len(events) < 2 {
		return events
	}
	out := events[:0]
	for i, ev := range events {
		authoritative := true
		for j := i + 1; j < len(events) && events[j].OccurredAt.Equal(ev.OccurredAt); j++ {
			if events[j].Field == ev.Field {
				authoritative = false
				break
			}
		}
		if authoritative {
			out = append(out, ev)
		}
	}
	return out
}
