package scenario

import (
	"fmt"
	"io"
	"math"
)

// MaxReorgDepth mirrors the consensus rule: honest nodes reject any
// reorganization deeper than this many blocks.
const MaxReorgDepth = 100

type LongRangeConfig struct {
	AttackerHashrate float64
	HonestHashrate   float64
	CurrentHeight    uint64
	ForkHeight       uint64
	MaxReorgDepth    uint64
}

func DefaultLongRangeConfig(attackerHashrate float64) LongRangeConfig {
	return LongRangeConfig{
		AttackerHashrate: attackerHashrate,
		HonestHashrate:   1 - attackerHashrate,
		CurrentHeight:    10000,
		ForkHeight:       1000,
		MaxReorgDepth:    MaxReorgDepth,
	}
}

type LongRangeReport struct {
	BlocksToRewrite     uint64
	AttackerRounds      float64
	HonestBlocksDuring  float64
	FinalAttackerHeight float64
	FinalHonestHeight   float64
	Outpaced            bool
	ReorgDepth          uint64
	BlockedByDepthLimit bool
}

// AnalyzeLongRange works out whether an attacker forking from deep history
// can ever present the longer chain, and whether the reorg depth limit stops
// it regardless.
func AnalyzeLongRange(config LongRangeConfig) *LongRangeReport {
	blocksToRewrite := config.CurrentHeight - config.ForkHeight

	attackerRounds := math.Inf(1)
	if config.AttackerHashrate > 0 {
		attackerRounds = float64(blocksToRewrite) / config.AttackerHashrate
	}
	honestBlocksDuring := config.HonestHashrate * attackerRounds

	finalAttacker := float64(blocksToRewrite)
	finalHonest := float64(config.CurrentHeight) + honestBlocksDuring

	return &LongRangeReport{
		BlocksToRewrite:     blocksToRewrite,
		AttackerRounds:      attackerRounds,
		HonestBlocksDuring:  honestBlocksDuring,
		FinalAttackerHeight: finalAttacker,
		FinalHonestHeight:   finalHonest,
		Outpaced:            finalAttacker > finalHonest,
		ReorgDepth:          blocksToRewrite,
		BlockedByDepthLimit: blocksToRewrite > config.MaxReorgDepth,
	}
}

func (r *LongRangeReport) Render(w io.Writer) {
	fmt.Fprintln(w, "LONG-RANGE ATTACK")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[1] Blocks to rewrite:           %d\n", r.BlocksToRewrite)
	fmt.Fprintf(w, "[2] Attacker rounds needed:      %.1f\n", r.AttackerRounds)
	fmt.Fprintf(w, "[3] Honest blocks during attack: %.1f\n", r.HonestBlocksDuring)
	fmt.Fprintf(w, "    Final attacker chain: %.0f\n", r.FinalAttackerHeight)
	fmt.Fprintf(w, "    Final honest chain:   %.0f\n", r.FinalHonestHeight)
	if r.Outpaced {
		fmt.Fprintln(w, "[4] ATTACK THEORETICALLY POSSIBLE: attacker chain would be longer")
	} else {
		fmt.Fprintln(w, "[4] ATTACK FAILED: attacker chain would be shorter than honest chain")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[5] Reorg depth limit check: depth %d vs limit %d\n", r.ReorgDepth, MaxReorgDepth)
	if r.BlockedByDepthLimit {
		fmt.Fprintln(w, "    ATTACK BLOCKED: honest nodes reject reorganizations this deep")
	} else {
		fmt.Fprintln(w, "    Attack within reorg limit, further analysis needed")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mitigation:")
	fmt.Fprintf(w, "  - MAX_REORG_DEPTH = %d blocks (enforced)\n", MaxReorgDepth)
	fmt.Fprintln(w, "  - Checkpoints at every 10,000 blocks")
	fmt.Fprintln(w, "  - Social consensus for resolving deep forks")
}
