package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMaxTableSummaryWidth(t *testing.T) {
	cases := []struct {
		name string
		cfg  *contract.Config
		want int
	}{
		{"narrow override clamps to minimum", &contract.Config{Width: 60}, 15},
		{"standard override", &contract.Config{Width: 100}, 40},
		{"wide override clamps to maximum", &contract.Config{Width: 200}, 60},
		{"detail eats into the budget", &contract.Config{Width: 130, Detail: true}, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, getMaxTableSummaryWidth(tc.cfg))
		})
	}
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "2.5", fmtFloat(2.512))

	fmtFloat, _ = createFormatters(2)
	assert.Equal(t, "2.51", fmtFloat(2.512))
}

func TestFormatWeeks(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	pick := func(c *schema.CycleTimeResult) float64 { return c.CalendarWeeks }

	assert.Equal(t, "-", formatWeeks(nil, pick, fmtFloat))
	assert.Equal(t, "3.5", formatWeeks(&schema.CycleTimeResult{CalendarWeeks: 3.5}, pick, fmtFloat))
}

func TestFormatBoundary(t *testing.T) {
	assert.Equal(t, "-", formatBoundary(time.Time{}))
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10T09:00:00Z", formatBoundary(at))
}

func TestCycleLabel(t *testing.T) {
	cfg := &contract.Config{AtRiskWeeks: 4.0}

	assert.Equal(t, "-", cycleLabel(nil, cfg, false))
	assert.Equal(t, contract.OpenValue, cycleLabel(&schema.CycleTimeResult{IsOpen: true, CalendarWeeks: 9}, cfg, false))
	assert.Equal(t, contract.CriticalValue, cycleLabel(&schema.CycleTimeResult{CalendarWeeks: 9}, cfg, false))
	assert.Equal(t, contract.LowValue, cycleLabel(&schema.CycleTimeResult{CalendarWeeks: 0.5}, cfg, false))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"count": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["count"])
	assert.Contains(t, buf.String(), "  ") // indented
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, records)
}

func TestFlattenCohortsOrdering(t *testing.T) {
	q1 := schema.Quarter{Year: 2025, Q: 1}
	q2 := schema.Quarter{Year: 2025, Q: 2}

	cohorts := map[schema.Phase]map[schema.Series]schema.CohortTable{
		schema.DiscoveryPhase: {
			schema.CalendarSeries: {q2: {Count: 1}, q1: {Count: 2}},
			schema.ActiveSeries:   {q1: {Count: 2}},
		},
		schema.BuildPhase: {
			schema.CalendarSeries: {q1: {Count: 5}},
			schema.ActiveSeries:   {q1: {Count: 5}},
		},
	}

	rows := flattenCohorts(cohorts)
	require.Len(t, rows, 5)

	// Discovery before build, calendar before active, quarters chronological.
	assert.Equal(t, schema.DiscoveryPhase, rows[0].Phase)
	assert.Equal(t, schema.CalendarSeries, rows[0].Series)
	assert.Equal(t, q1, rows[0].Quarter)
	assert.Equal(t, q2, rows[1].Quarter)
	assert.Equal(t, schema.ActiveSeries, rows[2].Series)
	assert.Equal(t, schema.BuildPhase, rows[3].Phase)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Build", titleCase("build"))
	assert.Equal(t, "Discovery", titleCase("discovery"))
	assert.Equal(t, "", titleCase(""))
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

// TestWriteIssueResultsCSV checks the CSV writer end to end through a file.
func TestWriteIssueResultsCSV(t *testing.T) {
	outFile := t.TempDir() + "/issues.csv"
	cfg := &contract.Config{
		Output:      schema.CSVOut,
		OutputFile:  outFile,
		Precision:   1,
		ResultLimit: 10,
		Phase:       schema.BuildPhase,
		AtRiskWeeks: 4.0,
		Workers:     1,
	}
	issues := []schema.IssueResult{
		{
			Key:     "FLOW-1",
			Summary: "Checkout latency",
			Build:   &schema.CycleTimeResult{CalendarWeeks: 6.0, ActiveWeeks: 5.0, ExcludedWeeks: 1.0},
		},
		{Key: "FLOW-2"},
	}

	require.NoError(t, WriteIssueResults(issues, nil, cfg, time.Second))

	records := readCSVFile(t, outFile)
	require.Len(t, records, 3)
	assert.Equal(t, issueCSVHeader, records[0])
	assert.Equal(t, "FLOW-1", records[1][1])
	assert.Equal(t, "6.0", records[1][4])
	assert.Equal(t, contract.HighValue, records[1][7])
	assert.Equal(t, "-", records[2][4])
}

// TestWriteCohortResultsCSV checks the cohort CSV writer end to end.
func TestWriteCohortResultsCSV(t *testing.T) {
	outFile := t.TempDir() + "/cohorts.csv"
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: outFile,
		Precision:  2,
		Workers:    1,
	}
	q := schema.Quarter{Year: 2025, Q: 2}
	cohorts := map[schema.Phase]map[schema.Series]schema.CohortTable{
		schema.BuildPhase: {
			schema.CalendarSeries: {q: {Count: 3, Min: 2, Q1: 3, Median: 4, Q3: 5, Max: 10}},
			schema.ActiveSeries:   {},
		},
		schema.DiscoveryPhase: {},
	}

	require.NoError(t, WriteCohortResults(cohorts, cfg, time.Second))

	records := readCSVFile(t, outFile)
	require.Len(t, records, 2)
	assert.Equal(t, cohortCSVHeader, records[0])
	assert.Equal(t, []string{"build", "calendar", "Q2 2025", "3", "2.00", "3.00", "4.00", "5.00", "10.00"}, records[1])
}
