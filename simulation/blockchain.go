package simulation

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"lukechampine.com/blake3"
)

const HashLength = 32

type Hash [HashLength]byte

type BlockNonce [8]byte

// EncodeNonce converts the given integer to a block nonce.
func EncodeNonce(i uint64) BlockNonce {
	var n BlockNonce
	binary.BigEndian.PutUint64(n[:], i)
	return n
}

// Bytes returns the raw bytes of the block nonce.
func (n BlockNonce) Bytes() []byte {
	return n[:]
}

// Uint64 returns the integer value of a block nonce.
func (n BlockNonce) Uint64() uint64 {
	return binary.BigEndian.Uint64(n[:])
}

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}

	copy(h[HashLength-len(b):], b)
}

func (h Hash) String() string {
	enc := make([]byte, len(h[:])*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], h[:])
	return string(enc)
}

func (h Hash) Bytes() []byte {
	return h[:]
}

// Party is the side a miner identity belongs to. Only the attacker/honest
// distinction affects which chain a block lands on.
type Party uint8

const (
	Genesis Party = iota
	Honest
	Attacker
)

// Identity names the miner of a block. Index is only meaningful for honest
// miners, where it picks one of the equally weighted honest identities.
type Identity struct {
	Party Party
	Index int
}

func AttackerIdentity() Identity {
	return Identity{Party: Attacker}
}

func HonestIdentity(index int) Identity {
	return Identity{Party: Honest, Index: index}
}

func (id Identity) String() string {
	switch id.Party {
	case Attacker:
		return "ATTACKER"
	case Honest:
		return fmt.Sprintf("HONEST_%d", id.Index)
	default:
		return "GENESIS"
	}
}

const (
	genesisTime  uint64 = 1763452800
	genesisNonce uint64 = 0xDEADBEEF
)

// Block is immutable once produced. Its hash stands in for a real proof of
// work hash: it only has to be unique per (number, parent, nonce, miner).
type Block struct {
	parentHash Hash
	number     uint64
	nonce      BlockNonce
	time       uint64
	miner      Identity
}

func GenesisBlock() *Block {
	return &Block{
		parentHash: Hash{},
		number:     0,
		nonce:      EncodeNonce(genesisNonce),
		time:       genesisTime,
		miner:      Identity{Party: Genesis},
	}
}

func (b *Block) Hash() (hash Hash) {
	sealHash := b.SealHash().Bytes()
	var hData [40]byte
	copy(hData[:], b.Nonce().Bytes())
	copy(hData[len(b.nonce):], sealHash)
	sum := blake3.Sum256(hData[:])
	hash.SetBytes(sum[:])
	return hash
}

func (b *Block) SealHash() (hash Hash) {
	sealData := struct {
		ParentHash Hash
		Number     uint64
		Miner      Identity
		Time       uint64
	}{
		ParentHash: b.ParentHash(),
		Number:     b.Number(),
		Miner:      b.Miner(),
		Time:       b.Time(),
	}
	buf := bytes.Buffer{}
	e := gob.NewEncoder(&buf)
	err := e.Encode(sealData)
	if err != nil {
		fmt.Println(`failed gob Encode`, err)
	}
	data := buf.Bytes()
	sum := blake3.Sum256(data[:])
	hash.SetBytes(sum[:])
	return hash
}

func (b *Block) ParentHash() Hash {
	return b.parentHash
}

func (b *Block) Number() uint64 {
	return b.number
}

func (b *Block) Nonce() BlockNonce {
	return b.nonce
}

func (b *Block) Time() uint64 {
	return b.time
}

func (b *Block) Miner() Identity {
	return b.miner
}

func (b *Block) String() string {
	return fmt.Sprintf("{ ParentHash: %v, Number: %v, Miner: %v, Nonce: %v, Time: %v}", b.ParentHash(), b.Number(), b.Miner(), b.Nonce(), b.Time())
}

// Chain is an ordered, append-only block sequence starting at genesis.
// Blocks are immutable, so clones share block pointers but never the slice.
type Chain struct {
	blocks []*Block
}

func NewChain(genesis *Block) *Chain {
	return &Chain{blocks: []*Block{genesis}}
}

func (c *Chain) Length() int {
	return len(c.blocks)
}

func (c *Chain) Tip() *Block {
	return c.blocks[len(c.blocks)-1]
}

func (c *Chain) Block(i int) *Block {
	return c.blocks[i]
}

func (c *Chain) Append(block *Block) {
	c.blocks = append(c.blocks, block)
}

func (c *Chain) Clone() *Chain {
	cpy := make([]*Block, len(c.blocks))
	copy(cpy, c.blocks)
	return &Chain{blocks: cpy}
}

// ForkPoint returns the first index at which the two chains disagree by block
// hash. If one chain is a prefix of the other, the fork point is the shorter
// chain's length.
func (c *Chain) ForkPoint(other *Chain) int {
	shorter := c.Length()
	if other.Length() < shorter {
		shorter = other.Length()
	}
	for i := 0; i < shorter; i++ {
		if c.blocks[i].Hash() != other.blocks[i].Hash() {
			return i
		}
	}
	return shorter
}

// MinedBy counts the blocks in the chain mined by the given party.
func (c *Chain) MinedBy(party Party) int {
	count := 0
	for _, block := range c.blocks {
		if block.Miner().Party == party {
			count++
		}
	}
	return count
}

// BlockDB is a ledger of every block produced during a run, keyed by hash.
// The producer uses it to guard against hash collisions; inspection and tests
// use it to look blocks up after the fact.
type BlockDB struct {
	blocks *lru.Cache[Hash, Block]
}

func NewBlockDB() *BlockDB {
	bc, _ := lru.New[Hash, Block](10000)
	return &BlockDB{
		blocks: bc,
	}
}

func (db *BlockDB) Add(block *Block) {
	db.blocks.Add(block.Hash(), *block)
}

func (db *BlockDB) Get(hash Hash) (*Block, bool) {
	block, ok := db.blocks.Get(hash)
	if !ok {
		return nil, false
	}
	return &block, true
}

func (db *BlockDB) Has(hash Hash) bool {
	return db.blocks.Contains(hash)
}
