package cmd

import (
	"github.com/flowspan/flowspan/core"
	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/histfile"
	"github.com/spf13/cobra"
)

// atRiskCmd flags issues with cycle times past the threshold.
var atRiskCmd = &cobra.Command{
	Use:   "atrisk [history-file]",
	Short: "Show issues whose cycle time exceeds the at-risk threshold.",
	Long: `List issues whose phase cycle time has crossed the at-risk threshold.

Both finished and still-open phases count: a build that has already been
running past the threshold is exactly the kind of work this report surfaces.
Results are sorted longest first.

Examples:
  # Builds past the default threshold
  flowspan atrisk export.json

  # Discovery phases past six weeks
  flowspan atrisk export.json --phase discovery --at-risk-weeks 6`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		provider := histfile.NewProvider(cfg.HistoryPath)
		if err := core.ExecuteAtRisk(rootCtx, cfg, provider, storeManager); err != nil {
			contract.LogFatal("Cannot run at-risk analysis", err)
		}
	},
}
