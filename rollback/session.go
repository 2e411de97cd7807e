// Package rollback drives a sim.Simulation under prediction and rollback:
// it schedules inputs with the fixed input delay, predicts missing remote
// inputs by repeating the last confirmed one, snapshots every tick, and
// resimulates from the divergence point when a real input contradicts a
// prediction. The pipeline itself stays oblivious — every replayed tick is
// just another Advance call over restored state.
package rollback

import (
	"errors"
	"fmt"

	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
	"github.com/arcadewire/tagduel/sim"
)

// historySize bounds the input, snapshot and checksum rings. It comfortably
// covers MaxPrediction plus the input delay and transport jitter.
const historySize = 64

var (
	// ErrPredictionLimit means the simulation is MaxPrediction ticks ahead
	// of the last confirmed remote input and must stall until one arrives.
	ErrPredictionLimit = errors.New("rollback: prediction window exhausted")

	// ErrTooFarBehind means a corrected input landed on a tick whose
	// restore point has already left the snapshot window.
	ErrTooFarBehind = errors.New("rollback: corrected input predates the snapshot window")
)

type inputSlot struct {
	tick      uint64
	input     components.Input
	confirmed bool
	valid     bool
}

type snapshotSlot struct {
	tick  uint64
	data  []byte
	valid bool
}

type checksumSlot struct {
	tick  uint64
	sum   uint64
	valid bool
}

// Session owns one peer's view of the match: the simulation plus the rings
// and bookkeeping that make prediction and rollback work.
type Session struct {
	sim   *sim.Simulation
	local int

	inputs    [config.NumPlayers][historySize]inputSlot
	snapshots [historySize]snapshotSlot
	checksums [historySize]checksumSlot

	// confirmedThrough is the highest apply-tick per player with a real
	// (non-predicted) input. Inputs are assumed to arrive in tick order per
	// player; reordering is the transport collaborator's problem.
	confirmedThrough [config.NumPlayers]uint64
	// lastInput is the input at confirmedThrough, used for repeat-last
	// prediction of every later tick.
	lastInput [config.NumPlayers]components.Input

	onMatchEnd    func(winner int)
	matchEndFired bool
}

// NewSession wraps a freshly created simulation. localPlayer is this peer's
// player index; the other slot is fed by AddRemoteInput.
func NewSession(s *sim.Simulation, localPlayer int) (*Session, error) {
	if localPlayer < 0 || localPlayer >= config.NumPlayers {
		return nil, fmt.Errorf("local player index %d out of range", localPlayer)
	}

	sess := &Session{sim: s, local: localPlayer}

	// Baseline restore point so even tick 1 can be rolled back.
	data, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	sess.storeSnapshot(s.Tick(), data)
	return sess, nil
}

// SetMatchEndHandler registers the single discrete match-outcome event. It
// fires once, and only after every input up to the deciding tick has been
// confirmed, so a rollback can never retract it.
func (s *Session) SetMatchEndHandler(fn func(winner int)) {
	s.onMatchEnd = fn
}

// Sim exposes the wrapped simulation for read-only state access after tick
// completion (scores, phase, player positions for presentation).
func (s *Session) Sim() *sim.Simulation {
	return s.sim
}

// CurrentTick returns the most recently simulated tick.
func (s *Session) CurrentTick() uint64 {
	return s.sim.Tick()
}

// ConfirmedTick returns the highest tick for which every player's input is
// confirmed. State at and before it can no longer change.
func (s *Session) ConfirmedTick() uint64 {
	min := s.confirmedThrough[0]
	for _, ct := range s.confirmedThrough[1:] {
		if ct < min {
			min = ct
		}
	}
	return min
}

// ChecksumAt returns the checksum produced for the given tick, if it is
// still inside the history window. The network collaborator exchanges these
// every CheckDistance ticks to detect desynchronization.
func (s *Session) ChecksumAt(tick uint64) (uint64, bool) {
	slot := &s.checksums[tick%historySize]
	if !slot.valid || slot.tick != tick {
		return 0, false
	}
	return slot.sum, true
}

// AddLocalInput records the local player's input sampled for the upcoming
// tick. It is applied InputDelay ticks later; the returned apply-tick is
// what the transport sends to the remote peer alongside the record.
func (s *Session) AddLocalInput(in components.Input) uint64 {
	sampleTick := s.sim.Tick() + 1
	applyTick := sampleTick + config.InputDelay
	s.setConfirmed(s.local, applyTick, in)
	return applyTick
}

// AddRemoteInput records the remote player's input for the given apply-tick.
// If that tick has already been simulated with a different predicted input,
// the session restores the snapshot before it and resimulates forward with
// the corrected record.
func (s *Session) AddRemoteInput(applyTick uint64, in components.Input) error {
	remote := s.remoteIndex()
	slot := &s.inputs[remote][applyTick%historySize]

	if slot.valid && slot.tick == applyTick && slot.confirmed {
		// Duplicate delivery.
		return nil
	}

	mispredicted := applyTick <= s.sim.Tick() &&
		(!slot.valid || slot.tick != applyTick || slot.input != in)

	s.setConfirmed(remote, applyTick, in)

	if mispredicted {
		if err := s.resimulate(applyTick); err != nil {
			return err
		}
	}

	s.maybeFireMatchEnd()
	return nil
}

// Advance simulates the next tick, predicting any input not yet confirmed,
// and returns the tick's checksum. It refuses to run further than
// MaxPrediction ticks past the last confirmed remote input.
func (s *Session) Advance() (uint64, error) {
	next := s.sim.Tick() + 1

	remote := s.remoteIndex()
	if next > s.confirmedThrough[remote]+config.MaxPrediction {
		return 0, ErrPredictionLimit
	}

	checksum := s.sim.Advance(s.inputsFor(next))

	data, err := s.sim.Snapshot()
	if err != nil {
		return 0, err
	}
	s.storeSnapshot(next, data)
	s.storeChecksum(next, checksum)

	s.maybeFireMatchEnd()
	return checksum, nil
}

// inputsFor assembles the per-player input set for a tick, filling
// unconfirmed slots with a repeat-last prediction and recording what was
// predicted so a later real input can be compared against it.
func (s *Session) inputsFor(tick uint64) [config.NumPlayers]components.Input {
	var set [config.NumPlayers]components.Input
	for p := 0; p < config.NumPlayers; p++ {
		slot := &s.inputs[p][tick%historySize]
		if slot.valid && slot.tick == tick && slot.confirmed {
			set[p] = slot.input
			continue
		}
		predicted := s.lastInput[p]
		*slot = inputSlot{tick: tick, input: predicted, confirmed: false, valid: true}
		set[p] = predicted
	}
	return set
}

// resimulate restores the snapshot before fromTick and replays every tick up
// to the current one with the corrected input set. Predictions past the
// confirmation horizon are refreshed from the newest confirmed input.
func (s *Session) resimulate(fromTick uint64) error {
	target := s.sim.Tick()

	restore := &s.snapshots[(fromTick-1)%historySize]
	if !restore.valid || restore.tick != fromTick-1 {
		return fmt.Errorf("%w: tick %d, window ends at tick %d", ErrTooFarBehind, fromTick, target)
	}
	if err := s.sim.Restore(restore.data); err != nil {
		return err
	}

	for tick := fromTick; tick <= target; tick++ {
		checksum := s.sim.Advance(s.inputsFor(tick))

		data, err := s.sim.Snapshot()
		if err != nil {
			return err
		}
		s.storeSnapshot(tick, data)
		s.storeChecksum(tick, checksum)
	}
	return nil
}

func (s *Session) remoteIndex() int {
	return (s.local + 1) % config.NumPlayers
}

func (s *Session) setConfirmed(player int, applyTick uint64, in components.Input) {
	s.inputs[player][applyTick%historySize] = inputSlot{
		tick:      applyTick,
		input:     in,
		confirmed: true,
		valid:     true,
	}
	if applyTick > s.confirmedThrough[player] {
		s.confirmedThrough[player] = applyTick
		s.lastInput[player] = in
	}

	// A stale prediction for a later tick may still sit in the ring; it
	// will be refreshed by inputsFor during the next resimulation, and
	// compared against the real record when that arrives.
}

func (s *Session) storeSnapshot(tick uint64, data []byte) {
	s.snapshots[tick%historySize] = snapshotSlot{tick: tick, data: data, valid: true}
}

func (s *Session) storeChecksum(tick uint64, sum uint64) {
	s.checksums[tick%historySize] = checksumSlot{tick: tick, sum: sum, valid: true}
}

func (s *Session) maybeFireMatchEnd() {
	if s.matchEndFired || s.onMatchEnd == nil {
		return
	}
	winner, ok := s.sim.MatchWinner()
	if !ok {
		return
	}
	endTick := s.sim.State().Round.MatchEndTick
	if s.ConfirmedTick() >= endTick {
		s.matchEndFired = true
		s.onMatchEnd(winner)
	}
}
