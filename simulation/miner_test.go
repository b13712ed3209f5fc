package simulation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrawNeverAttackerAtZeroHashrate(t *testing.T) {
	pool := NewMinerPool(0, 3, rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		actor := pool.Draw()
		require.Equal(t, Honest, actor.Party)
		require.GreaterOrEqual(t, actor.Index, 0)
		require.Less(t, actor.Index, 3)
	}
}

func TestDrawAlwaysAttackerAtFullHashrate(t *testing.T) {
	pool := NewMinerPool(1, 3, rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		require.Equal(t, Attacker, pool.Draw().Party)
	}
}

func TestDrawApproximatesHashrate(t *testing.T) {
	pool := NewMinerPool(0.3, 3, rand.New(rand.NewSource(42)))
	attacker := 0
	const draws = 10000
	for i := 0; i < draws; i++ {
		if pool.Draw().Party == Attacker {
			attacker++
		}
	}
	fraction := float64(attacker) / draws
	require.InDelta(t, 0.3, fraction, 0.02)
}

func TestDrawSequenceIsSeeded(t *testing.T) {
	first := NewMinerPool(0.3, 3, rand.New(rand.NewSource(7)))
	second := NewMinerPool(0.3, 3, rand.New(rand.NewSource(7)))
	for i := 0; i < 100; i++ {
		require.Equal(t, first.Draw(), second.Draw())
	}
}
