package simulation

import (
	"fmt"
	"io"
)

// FinalReport is the profitability verdict derived from a finished run. The
// expected reward is the attacker's fair share under honest mining; the
// actual reward is what it holds in the final canonical chain.
type FinalReport struct {
	AttackerMined       int
	HonestMined         int
	AttackerInMainChain int
	HonestInMainChain   int
	Reorgs              int
	PublicChainLength   int

	ExpectedAttackerReward float64
	ActualAttackerReward   int
	Profit                 float64
	Profitable             bool
}

// BuildReport derives the final report from a finished run. Pure read of the
// state; calling it twice gives equal reports.
func BuildReport(state *SimulationState, config Config) *FinalReport {
	expected := config.AttackerHashrate * float64(config.TotalRounds)
	actual := state.Public.MinedBy(Attacker)
	profit := float64(actual) - expected

	return &FinalReport{
		AttackerMined:          state.AttackerMined,
		HonestMined:            state.HonestMined,
		AttackerInMainChain:    state.AttackerInMainChain,
		HonestInMainChain:      state.HonestInMainChain,
		Reorgs:                 state.Reorgs,
		PublicChainLength:      state.Public.Length(),
		ExpectedAttackerReward: expected,
		ActualAttackerReward:   actual,
		Profit:                 profit,
		Profitable:             profit > 0,
	}
}

// Render writes the human-readable results table.
func (r *FinalReport) Render(w io.Writer) {
	fmt.Fprintln(w, "SIMULATION RESULTS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Blocks Mined:")
	fmt.Fprintf(w, "  Attacker: %d\n", r.AttackerMined)
	fmt.Fprintf(w, "  Honest:   %d\n", r.HonestMined)
	fmt.Fprintf(w, "  Total:    %d\n", r.AttackerMined+r.HonestMined)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Blocks in Main Chain (Rewards):")
	fmt.Fprintf(w, "  Attacker: %d (expected %.1f)\n", r.ActualAttackerReward, r.ExpectedAttackerReward)
	fmt.Fprintf(w, "  Honest:   %d\n", r.PublicChainLength-r.ActualAttackerReward)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Reorganizations: %d\n", r.Reorgs)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profitability Analysis:")
	fmt.Fprintf(w, "  Honest mining reward:  %.1f blocks\n", r.ExpectedAttackerReward)
	fmt.Fprintf(w, "  Selfish mining reward: %d blocks\n", r.ActualAttackerReward)
	if r.ExpectedAttackerReward > 0 {
		fmt.Fprintf(w, "  Profit/Loss:           %+.1f blocks (%+.1f%%)\n", r.Profit, r.Profit/r.ExpectedAttackerReward*100)
	} else {
		fmt.Fprintf(w, "  Profit/Loss:           %+.1f blocks\n", r.Profit)
	}
	fmt.Fprintln(w)
	if r.Profitable {
		fmt.Fprintln(w, "  SELFISH MINING IS PROFITABLE")
	} else {
		fmt.Fprintln(w, "  Selfish mining is NOT profitable")
	}
}
