package scenario

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimewarpNaiveSpanCollapses(t *testing.T) {
	report := AnalyzeTimewarp(DefaultTimewarpConfig(1763452800))

	require.Equal(t, int64(60000), report.ExpectedSpan)
	require.Equal(t, int64(0), report.NaiveSpan)
	require.Zero(t, report.NaiveRatio)
}

func TestTimewarpMTPForcesForwardCreep(t *testing.T) {
	report := AnalyzeTimewarp(DefaultTimewarpConfig(1763452800))

	// MTP keeps timestamps moving, but only by a second every few blocks:
	// the faked span stays tiny next to the real retarget window, so the
	// retarget would still read the window as far too fast.
	require.Greater(t, report.MTPSpan, int64(0))
	require.Less(t, report.MTPSpan, report.ExpectedSpan/100)
	require.False(t, report.Mitigated)
}

func TestTimewarpDeterministicForFixedStart(t *testing.T) {
	a := AnalyzeTimewarp(DefaultTimewarpConfig(1000))
	b := AnalyzeTimewarp(DefaultTimewarpConfig(1000))
	require.Equal(t, a, b)
}

func TestTimewarpRender(t *testing.T) {
	var buf bytes.Buffer
	AnalyzeTimewarp(DefaultTimewarpConfig(1763452800)).Render(&buf)

	out := buf.String()
	require.Contains(t, out, "Timewarp")
	require.Contains(t, out, "median-time-past")
}
