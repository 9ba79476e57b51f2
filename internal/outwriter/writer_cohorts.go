package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/parquet"
	"github.com/flowspan/flowspan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCohortResults outputs quarterly cohort quartile summaries, dispatching
// based on the output format configured. Text output prints one table per
// phase and series pair; machine formats flatten everything into rows keyed
// by phase, series, and quarter.
func WriteCohortResults(cohorts map[schema.Phase]map[schema.Series]schema.CohortTable, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCohortJSONResults(cohorts, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCohortCSVResults(cohorts, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeCohortParquetResults(cohorts, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCohortTables(cohorts, cfg, fmtFloat, duration, w)
		}, "Wrote tables")
	}
	return nil
}

// cohortRow is a flattened cohort summary used by the machine formats.
type cohortRow struct {
	Phase   schema.Phase         `json:"phase"`
	Series  schema.Series        `json:"series"`
	Quarter schema.Quarter       `json:"quarter"`
	Summary schema.CohortSummary `json:"summary"`
}

// flattenCohorts walks the nested cohort maps in reporting order: phases,
// then series, then quarters chronologically.
func flattenCohorts(cohorts map[schema.Phase]map[schema.Series]schema.CohortTable) []cohortRow {
	var rows []cohortRow
	for _, phase := range schema.AllPhases {
		for _, series := range schema.AllSeries {
			table := cohorts[phase][series]
			for _, quarter := range schema.SortedQuarters(table) {
				rows = append(rows, cohortRow{
					Phase:   phase,
					Series:  series,
					Quarter: quarter,
					Summary: table[quarter],
				})
			}
		}
	}
	return rows
}

// writeCohortJSONResults handles opening the file and calling the JSON writer.
func writeCohortJSONResults(cohorts map[schema.Phase]map[schema.Series]schema.CohortTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, flattenCohorts(cohorts))
	}, "Wrote JSON")
}

// cohortCSVHeader is the column order shared by the CSV writer and its tests.
var cohortCSVHeader = []string{
	"phase",
	"series",
	"quarter",
	"count",
	"min",
	"q1",
	"median",
	"q3",
	"max",
}

// writeCohortCSVResults handles opening the file and calling the CSV writer.
func writeCohortCSVResults(cohorts map[schema.Phase]map[schema.Series]schema.CohortTable, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, cohortCSVHeader, func(csvWriter *csv.Writer) error {
			for _, row := range flattenCohorts(cohorts) {
				rec := []string{
					string(row.Phase),
					string(row.Series),
					row.Quarter.String(),
					strconv.Itoa(row.Summary.Count),
					fmtFloat(row.Summary.Min),
					fmtFloat(row.Summary.Q1),
					fmtFloat(row.Summary.Median),
					fmtFloat(row.Summary.Q3),
					fmtFloat(row.Summary.Max),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeCohortParquetResults converts summaries to Parquet rows and writes them.
func writeCohortParquetResults(cohorts map[schema.Phase]map[schema.Series]schema.CohortTable, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	flat := flattenCohorts(cohorts)
	rows := make([]parquet.CohortSummaryRow, len(flat))
	for i, row := range flat {
		rows[i] = parquet.CohortSummaryRow{
			Phase:   string(row.Phase),
			Series:  string(row.Series),
			Quarter: row.Quarter.String(),
			Count:   int32(row.Summary.Count),
			Min:     row.Summary.Min,
			Q1:      row.Summary.Q1,
			Median:  row.Summary.Median,
			Q3:      row.Summary.Q3,
			Max:     row.Summary.Max,
		}
	}
	if err := parquet.WriteCohortSummariesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeCohortTables generates and writes one human-readable table per
// phase and series pair.
func writeCohortTables(cohorts map[schema.Phase]map[schema.Series]schema.CohortTable, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	for _, phase := range schema.AllPhases {
		for _, series := range schema.AllSeries {
			table := cohorts[phase][series]
			if len(table) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(writer, "%s cycle time (%s weeks) by completion quarter:\n", titleCase(string(phase)), series); err != nil {
				return err
			}
			if err := writeCohortTable(table, fmtFloat, writer); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCohortTable renders one quartile table, quarters in chronological order.
func writeCohortTable(cohort schema.CohortTable, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Quarter", "Count", "Min", "Q1", "Median", "Q3", "Max"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, quarter := range schema.SortedQuarters(cohort) {
		s := cohort[quarter]
		data = append(data, []string{
			quarter.String(),
			strconv.Itoa(s.Count),
			fmtFloat(s.Min),
			fmtFloat(s.Q1),
			fmtFloat(s.Median),
			fmtFloat(s.Q3),
			fmtFloat(s.Max),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// titleCase uppercases the first letter of a phase or series label.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
