package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensyria/blockchain/simulation"
)

var (
	attackerHashrate float64
	totalBlocks      int
	honestMiners     int
	randomSeed       int64
	progressEvery    int
	verbose          bool
	renderDelay      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "attacksim",
	Short: "OpenSyria Digital Lira consensus attack simulator",
	Long: `attacksim models adversarial mining behavior against the OpenSyria
proof-of-work consensus rules. It runs a selfish-mining economic simulation
and a set of stateless attack analyses (double-spend, long-range, timewarp).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&attackerHashrate, "attacker-hashrate", 0.30,
		"Attacker hashrate fraction (0.0-1.0)")
	rootCmd.PersistentFlags().IntVar(&totalBlocks, "blocks", 100,
		"Total blocks (rounds) to simulate")
	rootCmd.PersistentFlags().IntVar(&honestMiners, "honest-miners", simulation.DefaultHonestMiners,
		"Number of equally weighted honest miner identities")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "seed", 0,
		"Random seed for a reproducible run, 0 picks one at random")
	rootCmd.PersistentFlags().IntVar(&progressEvery, "progress-every", simulation.DefaultProgressEvery,
		"Print a progress line every N rounds, 0 disables")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Narrate every round")
	rootCmd.PersistentFlags().DurationVar(&renderDelay, "delay", 0,
		"Cosmetic pause between progress lines, purely a rendering concern")

	rootCmd.AddCommand(selfishCmd)
	rootCmd.AddCommand(doubleSpendCmd)
	rootCmd.AddCommand(longRangeCmd)
	rootCmd.AddCommand(timewarpCmd)
	rootCmd.AddCommand(allCmd)
}

// newNarrationLogger builds the per-round narration logger, a no-op unless
// --verbose is set.
func newNarrationLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
