package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterOf(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want Quarter
	}{
		{"january", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Quarter{Year: 2025, Q: 1}},
		{"march edge", time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC), Quarter{Year: 2025, Q: 1}},
		{"april", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Quarter{Year: 2025, Q: 2}},
		{"september", time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC), Quarter{Year: 2024, Q: 3}},
		{"december", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), Quarter{Year: 2025, Q: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, QuarterOf(tc.at))
		})
	}
}

func TestQuarterString(t *testing.T) {
	assert.Equal(t, "Q3 2025", Quarter{Year: 2025, Q: 3}.String())
}

func TestQuarterTextRoundTrip(t *testing.T) {
	q := Quarter{Year: 2025, Q: 2}

	text, err := q.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Q2 2025", string(text))

	var parsed Quarter
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, q, parsed)
}

func TestQuarterUnmarshalInvalid(t *testing.T) {
	var q Quarter
	assert.Error(t, q.UnmarshalText([]byte("2025-Q2")))
	assert.Error(t, q.UnmarshalText([]byte("Q5 2025")))
}

// TestQuarterAsJSONMapKey checks quarters survive a JSON round trip as map
// keys, which the cohort output relies on.
func TestQuarterAsJSONMapKey(t *testing.T) {
	table := CohortTable{
		{Year: 2025, Q: 1}: {Count: 3},
	}

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Q1 2025"`)

	var decoded CohortTable
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded[Quarter{Year: 2025, Q: 1}].Count)
}

func TestSortedQuarters(t *testing.T) {
	table := CohortTable{
		{Year: 2025, Q: 3}: {},
		{Year: 2024, Q: 4}: {},
		{Year: 2025, Q: 1}: {},
	}

	got := SortedQuarters(table)
	assert.Equal(t, []Quarter{
		{Year: 2024, Q: 4},
		{Year: 2025, Q: 1},
		{Year: 2025, Q: 3},
	}, got)
}
