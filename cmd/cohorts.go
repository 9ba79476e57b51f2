package cmd

import (
	"github.com/flowspan/flowspan/core"
	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/histfile"
	"github.com/spf13/cobra"
)

// cohortsCmd performs quarterly cohort analysis.
var cohortsCmd = &cobra.Command{
	Use:   "cohorts [history-file]",
	Short: "Show quarterly quartile summaries of cycle times.",
	Long: `Group completed phases into quarterly cohorts and summarize each one.

Issues are grouped by the calendar quarter in which the phase completed.
Each cohort gets a five-number summary (min, Q1, median, Q3, max) of both
the calendar and active duration series, for discovery and build.

Open phases are excluded: a cohort only contains finished work, so its
statistics are stable once the quarter ends.

Examples:
  # Quartile tables for every phase and series
  flowspan cohorts export.json

  # Machine-readable output for dashboards
  flowspan cohorts export.json --output json

  # Columnar export for DuckDB or pandas
  flowspan cohorts export.json --output parquet --output-file cohorts.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		provider := histfile.NewProvider(cfg.HistoryPath)
		if err := core.ExecuteCohorts(rootCtx, cfg, provider, storeManager); err != nil {
			contract.LogFatal("Cannot run cohorts analysis", err)
		}
	},
}
