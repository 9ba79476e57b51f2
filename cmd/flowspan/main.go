// main is the entry point for the flowspan CLI.
package main

import (
	"os"

	"github.com/flowspan/flowspan/cmd"
	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/resultstore"
)

func main() {
	// Wire the global store manager into the command layer before execution.
	cmd.SetStoreManager(resultstore.Manager)
	defer resultstore.CloseStores()

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Cannot stop profiling", perr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		resultstore.CloseStores()
		os.Exit(1)
	}
}
