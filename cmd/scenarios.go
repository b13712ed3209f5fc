package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opensyria/blockchain/scenario"
)

var doubleSpendCmd = &cobra.Command{
	Use:   "doublespend",
	Short: "Narrate a confirmation-depth double-spend attack",
	Run: func(cmd *cobra.Command, args []string) {
		runDoubleSpend()
	},
}

var longRangeCmd = &cobra.Command{
	Use:   "longrange",
	Short: "Analyze long-range attack feasibility against the reorg depth limit",
	Run: func(cmd *cobra.Command, args []string) {
		runLongRange()
	},
}

var timewarpCmd = &cobra.Command{
	Use:   "timewarp",
	Short: "Analyze timestamp manipulation against the median-time-past rule",
	Run: func(cmd *cobra.Command, args []string) {
		runTimewarp()
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the selfish-mining simulation and every attack analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runSelfish(); err != nil {
			return err
		}
		fmt.Println()
		runDoubleSpend()
		fmt.Println()
		runLongRange()
		fmt.Println()
		runTimewarp()
		return nil
	},
}

func runDoubleSpend() {
	report := scenario.SimulateDoubleSpend(scenario.DefaultDoubleSpendConfig())
	report.Render(os.Stdout)
}

func runLongRange() {
	report := scenario.AnalyzeLongRange(scenario.DefaultLongRangeConfig(attackerHashrate))
	report.Render(os.Stdout)
}

func runTimewarp() {
	report := scenario.AnalyzeTimewarp(scenario.DefaultTimewarpConfig(time.Now().Unix()))
	report.Render(os.Stdout)
}
