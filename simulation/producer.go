package simulation

import (
	"math/rand"
)

// maxBlockSpacing bounds the simulated seconds between a block and its
// parent. The value only has to look like plausible spacing; difficulty
// retargeting is not modeled.
const maxBlockSpacing = 600

// BlockProducer synthesizes candidate blocks on top of a chain tip. It holds
// no consensus logic: nonce and timestamp come from the shared seeded random
// source, so a run is reproducible end to end.
type BlockProducer struct {
	db   *BlockDB
	rand *rand.Rand
}

func NewBlockProducer(r *rand.Rand, db *BlockDB) *BlockProducer {
	return &BlockProducer{
		db:   db,
		rand: r,
	}
}

// Produce extends parent with a fresh block mined by the given identity.
// Never fails: on the (practically unreachable) event of a hash collision in
// the block ledger it redraws the nonce until the hash is unique.
func (p *BlockProducer) Produce(parent *Block, miner Identity) *Block {
	block := &Block{
		parentHash: parent.Hash(),
		number:     parent.Number() + 1,
		time:       parent.Time() + 1 + uint64(p.rand.Intn(maxBlockSpacing)),
		miner:      miner,
	}
	for {
		block.nonce = EncodeNonce(p.rand.Uint64())
		if !p.db.Has(block.Hash()) {
			break
		}
	}
	p.db.Add(block)
	return block
}
