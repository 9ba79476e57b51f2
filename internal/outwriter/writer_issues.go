package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/parquet"
	"github.com/flowspan/flowspan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteIssueResults outputs per-issue cycle results, dispatching based on the
// output format configured. Failures are warned to stderr regardless of format
// so that piped output stays machine-readable.
func WriteIssueResults(issues []schema.IssueResult, failures []schema.IssueFailure, cfg *contract.Config, duration time.Duration) error {
	printFailures(failures)

	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeIssueJSONResults(issues, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeIssueCSVResults(issues, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeIssueParquetResults(issues, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueTable(issues, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeIssueJSONResults handles opening the file and calling the JSON writer.
func writeIssueJSONResults(issues []schema.IssueResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForIssues(w, issues, cfg)
	}, "Wrote JSON")
}

// writeIssueCSVResults handles opening the file and calling the CSV writer.
func writeIssueCSVResults(issues []schema.IssueResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, issueCSVHeader, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForIssues(csvWriter, issues, cfg, fmtFloat)
		})
	}, "Wrote CSV")
}

// writeIssueParquetResults converts results to Parquet rows and writes them.
// Parquet is a binary format, so a file path is mandatory.
func writeIssueParquetResults(issues []schema.IssueResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := make([]parquet.IssueCycleRow, len(issues))
	for i := range issues {
		rows[i] = parquet.IssueCycleRowFromResult(&issues[i])
	}
	if err := parquet.WriteIssueCyclesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeIssueTable generates and writes the human-readable table.
func writeIssueTable(issues []schema.IssueResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Key", "Summary", "Calendar", "Active", "Label"}
	if cfg.Detail {
		headers = append(headers, "Excluded", "Start", "End")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	calendarOf := func(c *schema.CycleTimeResult) float64 { return c.CalendarWeeks }
	activeOf := func(c *schema.CycleTimeResult) float64 { return c.ActiveWeeks }
	excludedOf := func(c *schema.CycleTimeResult) float64 { return c.ExcludedWeeks }

	var data [][]string
	openCount := 0
	for i := range issues {
		cycle := issues[i].Cycle(cfg.Phase)
		if cycle != nil && cycle.IsOpen {
			openCount++
		}
		row := []string{
			strconv.Itoa(i + 1), // Rank
			issues[i].Key,       // Key
			contract.TruncateText(issues[i].Summary, getMaxTableSummaryWidth(cfg)), // Summary
			formatWeeks(cycle, calendarOf, fmtFloat),                               // Calendar
			formatWeeks(cycle, activeOf, fmtFloat),                                 // Active
			cycleLabel(cycle, cfg, cfg.UseColors),                                  // Label
		}
		if cfg.Detail {
			start, end := phaseWindow(&issues[i], cfg.Phase)
			row = append(
				row,
				formatWeeks(cycle, excludedOf, fmtFloat), // Excluded
				formatBoundary(start),                    // Start
				formatBoundary(end),                      // End
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Showing top %d issues by %s cycle (%d still open)\n", len(issues), cfg.Phase, openCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// issueCSVHeader is the column order shared by the CSV writer and its tests.
var issueCSVHeader = []string{
	"rank",
	"key",
	"summary",
	"phase",
	"calendar_weeks",
	"active_weeks",
	"excluded_weeks",
	"label",
	"open",
	"start",
	"end",
}

// writeCSVResultsForIssues writes the analysis results in CSV format.
func writeCSVResultsForIssues(w *csv.Writer, issues []schema.IssueResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	calendarOf := func(c *schema.CycleTimeResult) float64 { return c.CalendarWeeks }
	activeOf := func(c *schema.CycleTimeResult) float64 { return c.ActiveWeeks }
	excludedOf := func(c *schema.CycleTimeResult) float64 { return c.ExcludedWeeks }

	for i := range issues {
		cycle := issues[i].Cycle(cfg.Phase)
		open := "false"
		if cycle != nil && cycle.IsOpen {
			open = "true"
		}
		start, end := phaseWindow(&issues[i], cfg.Phase)
		rec := []string{
			strconv.Itoa(i + 1),                      // Rank
			issues[i].Key,                            // Key
			issues[i].Summary,                        // Summary
			string(cfg.Phase),                        // Phase
			formatWeeks(cycle, calendarOf, fmtFloat), // Calendar Weeks
			formatWeeks(cycle, activeOf, fmtFloat),   // Active Weeks
			formatWeeks(cycle, excludedOf, fmtFloat), // Excluded Weeks
			cycleLabel(cycle, cfg, false),            // Label
			open,                                     // Open
			formatBoundary(start),                    // Phase Start
			formatBoundary(end),                      // Phase End
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForIssues writes the analysis results in JSON format.
func writeJSONResultsForIssues(w io.Writer, issues []schema.IssueResult, cfg *contract.Config) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONIssueResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.IssueResult
	}

	output := make([]JSONIssueResult, len(issues))
	for i := range issues {
		output[i] = JSONIssueResult{
			Rank:        i + 1,
			Label:       cycleLabel(issues[i].Cycle(cfg.Phase), cfg, false),
			IssueResult: issues[i],
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// phaseWindow returns the start and end boundary of the given phase, zero
// valued when never reached.
func phaseWindow(issue *schema.IssueResult, phase schema.Phase) (time.Time, time.Time) {
	if phase == schema.DiscoveryPhase {
		return issue.Boundaries.DiscoveryStart, issue.Boundaries.BuildStart
	}
	return issue.Boundaries.BuildStart, issue.Boundaries.BuildEnd
}
