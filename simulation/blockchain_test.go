package simulation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestProducer(seed int64) *BlockProducer {
	return NewBlockProducer(rand.New(rand.NewSource(seed)), NewBlockDB())
}

func TestGenesisBlock(t *testing.T) {
	genesis := GenesisBlock()
	require.Equal(t, uint64(0), genesis.Number())
	require.Equal(t, Hash{}, genesis.ParentHash())
	require.Equal(t, Genesis, genesis.Miner().Party)
	require.Equal(t, "GENESIS", genesis.Miner().String())
}

func TestIdentityString(t *testing.T) {
	require.Equal(t, "ATTACKER", AttackerIdentity().String())
	require.Equal(t, "HONEST_0", HonestIdentity(0).String())
	require.Equal(t, "HONEST_2", HonestIdentity(2).String())
}

func TestProduceLinksParent(t *testing.T) {
	producer := newTestProducer(1)
	genesis := GenesisBlock()

	block := producer.Produce(genesis, HonestIdentity(0))
	require.Equal(t, genesis.Number()+1, block.Number())
	require.Equal(t, genesis.Hash(), block.ParentHash())
	require.Greater(t, block.Time(), genesis.Time())

	child := producer.Produce(block, AttackerIdentity())
	require.Equal(t, block.Number()+1, child.Number())
	require.Equal(t, block.Hash(), child.ParentHash())
}

func TestBlockHashDistinct(t *testing.T) {
	producer := newTestProducer(2)
	genesis := GenesisBlock()

	seen := make(map[Hash]bool)
	seen[genesis.Hash()] = true
	for i := 0; i < 50; i++ {
		block := producer.Produce(genesis, HonestIdentity(i%3))
		require.False(t, seen[block.Hash()], "duplicate block hash")
		seen[block.Hash()] = true
	}
}

func TestProducerRecordsBlocks(t *testing.T) {
	db := NewBlockDB()
	producer := NewBlockProducer(rand.New(rand.NewSource(3)), db)

	block := producer.Produce(GenesisBlock(), AttackerIdentity())
	got, ok := db.Get(block.Hash())
	require.True(t, ok)
	require.Equal(t, block.Number(), got.Number())
	require.Equal(t, block.Miner(), got.Miner())
	require.True(t, db.Has(block.Hash()))
}

func TestChainHeightMonotonic(t *testing.T) {
	producer := newTestProducer(4)
	chain := NewChain(GenesisBlock())
	for i := 0; i < 10; i++ {
		chain.Append(producer.Produce(chain.Tip(), HonestIdentity(0)))
	}

	require.Equal(t, 11, chain.Length())
	for i := 1; i < chain.Length(); i++ {
		require.Equal(t, chain.Block(i-1).Number()+1, chain.Block(i).Number())
		require.Equal(t, chain.Block(i-1).Hash(), chain.Block(i).ParentHash())
	}
}

func TestChainCloneIsIndependent(t *testing.T) {
	producer := newTestProducer(5)
	chain := NewChain(GenesisBlock())
	chain.Append(producer.Produce(chain.Tip(), HonestIdentity(0)))

	clone := chain.Clone()
	chain.Append(producer.Produce(chain.Tip(), HonestIdentity(1)))

	require.Equal(t, 3, chain.Length())
	require.Equal(t, 2, clone.Length())
	require.Equal(t, chain.Block(1).Hash(), clone.Block(1).Hash())
}

func TestForkPointDivergence(t *testing.T) {
	producer := newTestProducer(6)
	base := NewChain(GenesisBlock())
	base.Append(producer.Produce(base.Tip(), HonestIdentity(0)))
	base.Append(producer.Produce(base.Tip(), HonestIdentity(1)))

	// Shared prefix [G, A, B], then one honest and one attacker tip.
	left := base.Clone()
	right := base.Clone()
	left.Append(producer.Produce(left.Tip(), HonestIdentity(2)))
	right.Append(producer.Produce(right.Tip(), AttackerIdentity()))

	require.Equal(t, 3, left.ForkPoint(right))
	require.Equal(t, 3, right.ForkPoint(left))
}

func TestForkPointPrefix(t *testing.T) {
	producer := newTestProducer(7)
	chain := NewChain(GenesisBlock())
	chain.Append(producer.Produce(chain.Tip(), HonestIdentity(0)))

	prefix := chain.Clone()
	chain.Append(producer.Produce(chain.Tip(), HonestIdentity(0)))

	// No divergence block: the fork point is the shorter chain's length.
	require.Equal(t, 2, chain.ForkPoint(prefix))
	require.Equal(t, 2, prefix.ForkPoint(chain))
	require.Equal(t, chain.Length(), chain.ForkPoint(chain))
}

func TestMinedByCounts(t *testing.T) {
	producer := newTestProducer(8)
	chain := NewChain(GenesisBlock())
	chain.Append(producer.Produce(chain.Tip(), AttackerIdentity()))
	chain.Append(producer.Produce(chain.Tip(), HonestIdentity(0)))
	chain.Append(producer.Produce(chain.Tip(), AttackerIdentity()))

	require.Equal(t, 2, chain.MinedBy(Attacker))
	require.Equal(t, 1, chain.MinedBy(Honest))
	require.Equal(t, 1, chain.MinedBy(Genesis))
}
