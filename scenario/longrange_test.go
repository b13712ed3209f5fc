package scenario

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLongRangeBlockedByDepthLimit(t *testing.T) {
	report := AnalyzeLongRange(DefaultLongRangeConfig(0.3))

	require.Equal(t, uint64(9000), report.BlocksToRewrite)
	require.Equal(t, uint64(9000), report.ReorgDepth)
	require.True(t, report.BlockedByDepthLimit)
	require.False(t, report.Outpaced)
	require.InDelta(t, 30000, report.AttackerRounds, 1e-9)
	require.InDelta(t, 21000, report.HonestBlocksDuring, 1e-9)
}

func TestLongRangeShallowForkWithinLimit(t *testing.T) {
	config := DefaultLongRangeConfig(0.3)
	config.CurrentHeight = 1050
	config.ForkHeight = 1000

	report := AnalyzeLongRange(config)
	require.Equal(t, uint64(50), report.BlocksToRewrite)
	require.False(t, report.BlockedByDepthLimit)
}

func TestLongRangeZeroHashrateNeverCatchesUp(t *testing.T) {
	report := AnalyzeLongRange(DefaultLongRangeConfig(0))

	require.True(t, math.IsInf(report.AttackerRounds, 1))
	require.False(t, report.Outpaced)
}

func TestLongRangeRender(t *testing.T) {
	var buf bytes.Buffer
	AnalyzeLongRange(DefaultLongRangeConfig(0.3)).Render(&buf)

	out := buf.String()
	require.Contains(t, out, "LONG-RANGE ATTACK")
	require.Contains(t, out, "ATTACK BLOCKED")
}
