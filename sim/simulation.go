package sim

import (
	"fmt"

	"github.com/solarlune/resolv"

	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
	"github.com/arcadewire/tagduel/leveldata"
)

// Collision tags for the resolv space.
const (
	tagSolid  = "solid"
	tagPlayer = "player"
)

const spaceCellSize = 16

// Simulation owns the replicated state and advances it one fixed tick at a
// time. It has no notion of real time, wall clocks or whether a tick is being
// run for the first time or replayed: Advance is a pure function of
// (previous state, this tick's two input records).
//
// The resolv space and player objects are derived state, rebuilt from State
// whenever geometry appears (round start) or the state is restored. They are
// deliberately outside State so snapshots stay plain data.
type Simulation struct {
	arena *leveldata.ArenaData

	state State

	space      *resolv.Space
	playerObjs [config.NumPlayers]*resolv.Object

	// forces accumulates this tick's input-applied acceleration. It is
	// written by the input applier and consumed by the physics step within
	// the same tick, so it never needs to be part of a snapshot.
	forces [config.NumPlayers]components.Vector

	// lastPhase is the phase that ran on the most recent Advance, kept for
	// the presentation layer and tests. Derived, never replicated.
	lastPhase components.PhaseID

	checksum uint64
}

// New creates a simulation for the given arena. The arena must provide a
// spawn point per player slot; both peers must load identical arena data.
func New(arena *leveldata.ArenaData) (*Simulation, error) {
	if len(arena.Spawns) < config.NumPlayers {
		return nil, fmt.Errorf("arena has %d spawn points, need %d", len(arena.Spawns), config.NumPlayers)
	}

	s := &Simulation{arena: arena}
	s.state.Phase = components.PhaseInterludeStart
	s.state.Round.RoundWinner = components.NoWinner
	s.state.Round.MatchWinner = components.NoWinner
	return s, nil
}

// Advance runs one tick of the pipeline with the given per-player input
// records and returns the tick's checksum. The caller (the rollback session)
// is responsible for input delay and prediction; by the time an input record
// reaches Advance it is simply "the input for this tick".
func (s *Simulation) Advance(inputs [config.NumPlayers]components.Input) uint64 {
	s.state.Tick++

	phase := s.activePhase()
	s.lastPhase = phase

	switch phase {
	case components.PhaseInterludeStart:
		s.setupInterlude()
	case components.PhaseInterlude:
		s.runInterlude()
	case components.PhaseInterludeEnd:
		s.cleanupInterlude()
	case components.PhaseRoundStart:
		s.startRound()
	case components.PhaseRound:
		s.updateRoles()
		s.applyInputs(inputs)
		s.stepPhysics()
		s.evaluateProgress()
	case components.PhaseRoundEnd:
		s.cleanupRound()
	default:
		panic(fmt.Sprintf("sim: no handler for phase %v at tick %d", phase, s.state.Tick))
	}

	// Checksum runs strictly last, over the settled state.
	s.checksum = s.fold()
	return s.checksum
}

// State returns the replicated state. Callers outside the pipeline must
// treat it as read-only; only Advance and Restore may mutate it.
func (s *Simulation) State() *State {
	return &s.state
}

// Tick returns the tick counter of the most recently completed tick.
func (s *Simulation) Tick() uint64 {
	return s.state.Tick
}

// Checksum returns the digest produced by the most recent Advance.
func (s *Simulation) Checksum() uint64 {
	return s.checksum
}

// LastPhase returns the phase that ran on the most recent Advance.
func (s *Simulation) LastPhase() components.PhaseID {
	return s.lastPhase
}

// MatchWinner reports the match outcome, if one has been decided. The tick it
// was decided on is in State().Round.MatchEndTick; event delivery belongs to
// the rollback session, which waits for that tick to be confirmed.
func (s *Simulation) MatchWinner() (int, bool) {
	w := s.state.Round.MatchWinner
	return w, w != components.NoWinner
}

// rebuildSpace reconstructs the derived collision space from the replicated
// state. Called when world geometry is spawned and after Restore.
func (s *Simulation) rebuildSpace() {
	if len(s.state.Walls) == 0 {
		s.space = nil
		for i := range s.playerObjs {
			s.playerObjs[i] = nil
		}
		return
	}

	s.space = resolv.NewSpace(int(s.arena.Width), int(s.arena.Height), spaceCellSize, spaceCellSize)

	// Walls first, in stored order, so collision candidate ordering is
	// identical on every peer.
	for _, w := range s.state.Walls {
		obj := resolv.NewObject(w.X, w.Y, w.W, w.H, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, w.W, w.H))
		s.space.Add(obj)
	}

	for i := range s.playerObjs {
		p := &s.state.Players[i]
		obj := resolv.NewObject(p.Pos.X, p.Pos.Y, config.Player.CollisionWidth, config.Player.CollisionHeight, tagPlayer)
		obj.SetShape(resolv.NewRectangle(0, 0, config.Player.CollisionWidth, config.Player.CollisionHeight))
		s.space.Add(obj)
		s.playerObjs[i] = obj
	}
}
