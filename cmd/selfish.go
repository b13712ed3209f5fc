package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opensyria/blockchain/simulation"
)

var selfishCmd = &cobra.Command{
	Use:   "selfish",
	Short: "Run the selfish-mining profitability simulation",
	Long: `Simulates a minority miner that withholds blocks to build a private
lead and releases them strategically, then reports whether the strategy beat
the miner's fair-share reward.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelfish()
	},
}

func runSelfish() error {
	logger := newNarrationLogger()
	defer logger.Sync()

	sim, err := simulation.NewSimulation(simulation.Config{
		AttackerHashrate: attackerHashrate,
		HonestMiners:     honestMiners,
		TotalRounds:      totalBlocks,
		Seed:             randomSeed,
		ProgressEvery:    progressEvery,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	fmt.Println("SELFISH MINING SIMULATION")
	fmt.Printf("Attacker Hashrate: %.1f%%\n", attackerHashrate*100)
	fmt.Printf("Honest Hashrate:   %.1f%%\n", (1-attackerHashrate)*100)
	fmt.Printf("Total Blocks:      %d\n", totalBlocks)
	fmt.Printf("Seed:              %d\n", sim.Seed())
	fmt.Println()

	// Progress snapshots are observational; draining them in a goroutine
	// keeps the feed from ever blocking the round loop. The optional delay
	// paces the narration only, never the simulation.
	progressCh := make(chan simulation.ProgressSnapshot, 16)
	sub := sim.SubscribeProgress(progressCh)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for snapshot := range progressCh {
			fmt.Printf("--- Round %d ---\n", snapshot.Round)
			fmt.Printf("Public chain:    %d blocks\n", snapshot.PublicLength)
			fmt.Printf("Attacker chain:  %d blocks\n", snapshot.PrivateLength)
			fmt.Printf("Reorganizations: %d\n", snapshot.Reorgs)
			if renderDelay > 0 {
				time.Sleep(renderDelay)
			}
		}
	}()

	report := sim.Run()
	sub.Unsubscribe()
	close(progressCh)
	<-done

	fmt.Println()
	report.Render(os.Stdout)
	return nil
}
