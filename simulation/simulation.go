package simulation

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"

	"github.com/dominant-strategies/go-quai/event"
	"go.uber.org/zap"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid simulation configuration")

const (
	DefaultHonestMiners  = 3
	DefaultProgressEvery = 10
)

// Config describes one selfish-mining run. The zero Seed means "draw one from
// crypto/rand"; any other value makes the whole run reproducible, chain
// contents included.
type Config struct {
	AttackerHashrate float64
	HonestMiners     int
	TotalRounds      int
	Seed             int64

	// ProgressEvery emits a ProgressSnapshot on the progress feed every that
	// many rounds; zero disables snapshots.
	ProgressEvery int

	// Logger narrates rounds and reorgs; nil runs silently.
	Logger *zap.Logger
}

func (c Config) Validate() error {
	if c.AttackerHashrate < 0 || c.AttackerHashrate > 1 {
		return fmt.Errorf("%w: attacker hashrate %v outside [0,1]", ErrInvalidConfig, c.AttackerHashrate)
	}
	if c.HonestMiners <= 0 {
		return fmt.Errorf("%w: honest miner count %d must be positive", ErrInvalidConfig, c.HonestMiners)
	}
	if c.TotalRounds <= 0 {
		return fmt.Errorf("%w: total rounds %d must be positive", ErrInvalidConfig, c.TotalRounds)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval %d must not be negative", ErrInvalidConfig, c.ProgressEvery)
	}
	return nil
}

// ProgressSnapshot is an observational copy of the loop's position, sent on
// the progress feed every ProgressEvery rounds. Subscribers cannot reach the
// simulation state through it.
type ProgressSnapshot struct {
	Round         int
	PublicLength  int
	PrivateLength int
	Reorgs        int
}

// Simulation is a one-shot, single-threaded selfish-mining run. Everything
// is wired at construction; Run drives the round loop to completion and
// produces the final report.
type Simulation struct {
	config   Config
	seed     int64
	state    *SimulationState
	pool     *MinerPool
	producer *BlockProducer
	engine   *ReorgEngine
	db       *BlockDB

	progressFeed event.Feed
	done         bool
}

func NewSimulation(config Config) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		n, err := crand.Int(crand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			return nil, fmt.Errorf("seeding simulation: %w", err)
		}
		seed = n.Int64()
	}
	source := rand.New(rand.NewSource(seed))

	db := NewBlockDB()
	state := NewSimulationState(GenesisBlock())
	producer := NewBlockProducer(source, db)

	return &Simulation{
		config:   config,
		seed:     seed,
		state:    state,
		pool:     NewMinerPool(config.AttackerHashrate, config.HonestMiners, source),
		producer: producer,
		engine:   NewReorgEngine(state, producer, config.Logger),
		db:       db,
	}, nil
}

// Seed reports the seed actually used, whether configured or drawn.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// SubscribeProgress registers ch to receive a snapshot every ProgressEvery
// rounds. Subscribers must drain the channel or Run will block on delivery.
func (s *Simulation) SubscribeProgress(ch chan<- ProgressSnapshot) event.Subscription {
	return s.progressFeed.Subscribe(ch)
}

// Run executes the configured number of rounds and returns the final report.
// The state is exclusively owned by this loop; after Run returns it is
// read-only.
func (s *Simulation) Run() *FinalReport {
	if s.done {
		return BuildReport(s.state, s.config)
	}
	for round := 1; round <= s.config.TotalRounds; round++ {
		actor := s.pool.Draw()
		s.engine.Step(actor)

		if s.config.ProgressEvery > 0 && round%s.config.ProgressEvery == 0 {
			s.progressFeed.Send(ProgressSnapshot{
				Round:         round,
				PublicLength:  s.state.Public.Length(),
				PrivateLength: s.state.Private.Length(),
				Reorgs:        s.state.Reorgs,
			})
		}
	}
	s.done = true
	return BuildReport(s.state, s.config)
}

// State exposes the simulation state for post-run inspection.
func (s *Simulation) State() *SimulationState {
	return s.state
}
