package cmd

import (
	"github.com/flowspan/flowspan/core"
	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/histfile"
	"github.com/spf13/cobra"
)

// issuesCmd performs per-issue cycle-time analysis.
var issuesCmd = &cobra.Command{
	Use:   "issues [history-file]",
	Short: "Show the top issues ranked by cycle time.",
	Long: `Compute cycle times for every issue in a changelog export and rank them.

For each issue, flowspan rebuilds the status timeline from field-change events,
locates the discovery and build phase boundaries, and measures:
- Calendar weeks: wall-clock duration of the phase
- Active weeks: calendar weeks minus time spent on hold
- Excluded weeks: the on-hold time that was subtracted

Issues still inside a phase are measured up to now and marked open.

Examples:
  # Longest build cycles first
  flowspan issues export.json

  # Rank by discovery instead
  flowspan issues export.json --phase discovery

  # Include phase boundaries and excluded weeks
  flowspan issues export.json --detail

  # Export findings to CSV for tracking
  flowspan issues export.json --output csv --output-file cycles.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		provider := histfile.NewProvider(cfg.HistoryPath)
		if err := core.ExecuteIssues(rootCtx, cfg, provider, storeManager); err != nil {
			contract.LogFatal("Cannot run issues analysis", err)
		}
	},
}
