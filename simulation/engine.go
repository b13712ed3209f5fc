package simulation

import (
	"go.uber.org/zap"
)

// SimulationState owns both competing chains and the running counters. It is
// mutated exactly once per round by the engine and is exclusively owned by
// the single simulation loop; nothing here is safe for concurrent use.
type SimulationState struct {
	Public  *Chain
	Private *Chain

	AttackerMined       int
	HonestMined         int
	AttackerInMainChain int
	HonestInMainChain   int
	Reorgs              int
}

func NewSimulationState(genesis *Block) *SimulationState {
	return &SimulationState{
		Public:  NewChain(genesis),
		Private: NewChain(genesis),
	}
}

// ReorgEngine implements the attacker's withholding strategy: attacker blocks
// extend the private chain, honest blocks extend the public chain, and every
// honest block forces a release decision between the two.
type ReorgEngine struct {
	state    *SimulationState
	producer *BlockProducer
	logger   *zap.Logger
}

func NewReorgEngine(state *SimulationState, producer *BlockProducer, logger *zap.Logger) *ReorgEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReorgEngine{
		state:    state,
		producer: producer,
		logger:   logger,
	}
}

// Step runs one round for the given actor. Mined-block counters increment on
// every block regardless of whether it ever reaches the canonical chain.
func (e *ReorgEngine) Step(actor Identity) {
	if actor.Party == Attacker {
		block := e.producer.Produce(e.state.Private.Tip(), actor)
		e.state.Private.Append(block)
		e.state.AttackerMined++
		e.logger.Info("mined block, withholding",
			zap.Stringer("miner", actor),
			zap.Uint64("height", block.Number()),
			zap.Int("privateLength", e.state.Private.Length()))
		return
	}

	block := e.producer.Produce(e.state.Public.Tip(), actor)
	e.state.Public.Append(block)
	e.state.HonestMined++
	e.logger.Info("mined block, broadcasting",
		zap.Stringer("miner", actor),
		zap.Uint64("height", block.Number()),
		zap.Int("publicLength", e.state.Public.Length()))

	// Release decision happens only on honest rounds: the honest block either
	// threatens the attacker's lead (release and reorg) or erases it (abandon).
	e.evaluateRelease()
}

// evaluateRelease resolves the contest between the two chains after an honest
// block lands. A strictly longer private chain wins and replaces the public
// chain per the longest-valid-chain rule; otherwise the attacker abandons the
// private chain and restarts withholding from the public tip. Ties lose.
func (e *ReorgEngine) evaluateRelease() {
	s := e.state
	if s.Private.Length() > s.Public.Length() {
		forkPoint := s.Public.ForkPoint(s.Private)
		blocksReplaced := s.Public.Length() - forkPoint
		blocksWon := s.Private.Length() - forkPoint
		s.AttackerInMainChain += blocksWon
		s.Reorgs++

		e.logger.Warn("attacker releasing private chain",
			zap.Int("released", s.Private.Length()),
			zap.Int("reorgDepth", blocksReplaced),
			zap.Int("blocksWon", blocksWon),
			zap.Int("forkPoint", forkPoint))

		s.Public = s.Private.Clone()
		return
	}

	// Public chain caught up or passed: the withheld blocks are worthless.
	// Honest credit is recomputed from the whole public chain here, while the
	// attacker's credit above only ever accumulates. The original model does
	// the same and the asymmetry is kept as-is; see DESIGN.md.
	s.HonestInMainChain = s.Public.Length() - s.Public.MinedBy(Attacker)
	s.Private = s.Public.Clone()

	e.logger.Info("private chain abandoned",
		zap.Int("publicLength", s.Public.Length()),
		zap.Int("honestInMainChain", s.HonestInMainChain))
}
