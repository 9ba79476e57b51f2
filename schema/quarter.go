package schema

import (
	"fmt"
	"sort"
	"time"
)

// Quarter is a cohort key: the calendar quarter containing a phase's end
// boundary. The zero value is not a valid quarter.
type Quarter struct {
	Year int `json:"year"`
	Q    int `json:"q"` // 1-4
}

// QuarterOf returns the calendar quarter containing t.
func QuarterOf(t time.Time) Quarter {
	return Quarter{
		Year: t.Year(),
		Q:    int(t.Month()-1)/3 + 1,
	}
}

// String formats the quarter as a label like "Q3 2025".
func (q Quarter) String() string {
	return fmt.Sprintf("Q%d %d", q.Q, q.Year)
}

// MarshalText lets quarters serve as JSON map keys.
func (q Quarter) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText parses a label like "Q3 2025".
func (q *Quarter) UnmarshalText(text []byte) error {
	var parsed Quarter
	if _, err := fmt.Sscanf(string(text), "Q%d %d", &parsed.Q, &parsed.Year); err != nil {
		return fmt.Errorf("invalid quarter label %q: %w", text, err)
	}
	if parsed.Q < 1 || parsed.Q > 4 {
		return fmt.Errorf("invalid quarter label %q: quarter out of range", text)
	}
	*q = parsed
	return nil
}

// Before reports whether q precedes other chronologically.
func (q Quarter) Before(other Quarter) bool {
	if q.Year != other.Year {
		return q.Year < other.Year
	}
	return q.Q < other.Q
}

// SortedQuarters returns the keys of a cohort table in chronological order.
func SortedQuarters(table CohortTable) []Quarter {
	quarters := make([]Quarter, 0, len(table))
	for q := range table {
		quarters = append(quarters, q)
	}
	sort.Slice(quarters, func(i, j int) bool {
		return quarters[i].Before(quarters[j])
	})
	return quarters
}
