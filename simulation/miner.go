package simulation

import (
	"math/rand"
)

// MinerPool draws which identity mines the next block. The attacker wins a
// round with probability equal to its hashrate; otherwise one of the honest
// identities is chosen uniformly. The per-identity honest split is cosmetic:
// only the attacker/honest distinction routes blocks between chains.
type MinerPool struct {
	attackerHashrate float64
	honestCount      int
	rand             *rand.Rand
}

// NewMinerPool assumes a validated configuration: hashrate in [0,1] and a
// positive honest miner count (see Config.Validate).
func NewMinerPool(attackerHashrate float64, honestCount int, r *rand.Rand) *MinerPool {
	return &MinerPool{
		attackerHashrate: attackerHashrate,
		honestCount:      honestCount,
		rand:             r,
	}
}

// Draw selects the actor for one round.
func (p *MinerPool) Draw() Identity {
	if p.rand.Float64() < p.attackerHashrate {
		return AttackerIdentity()
	}
	return HonestIdentity(p.rand.Intn(p.honestCount))
}
