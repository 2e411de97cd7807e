package sim

import (
	"fmt"

	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
)

// Phase dispatch.
//
// Each phase has a run criterion: a pure predicate over (stored phase, round
// data). Exactly one criterion must hold on every tick; zero or multiple
// matches means the state machine has reached an undefined configuration and
// continuing would silently desynchronize the peers, so activePhase panics
// instead.
//
// Transitions, per the lifecycle:
//
//	InterludeStart → Interlude → … → InterludeEnd → RoundStart → Round → … → RoundEnd → InterludeStart
//
// The one-shot phases (InterludeStart, InterludeEnd, RoundStart, RoundEnd)
// run for a single tick. InterludeEnd and RoundEnd are derived rather than
// stored: the interlude countdown reaching zero selects InterludeEnd, and a
// declared round winner selects RoundEnd, so the evaluator never performs a
// transition itself — the criteria read its result on the next tick.
type phaseCriterion struct {
	id   components.PhaseID
	pred func(ph components.PhaseID, rd *components.RoundData) bool
}

var phaseCriteria = []phaseCriterion{
	{components.PhaseInterludeStart, onInterludeStart},
	{components.PhaseInterlude, onInterlude},
	{components.PhaseInterludeEnd, onInterludeEnd},
	{components.PhaseRoundStart, onRoundStart},
	{components.PhaseRound, onRound},
	{components.PhaseRoundEnd, onRoundEnd},
}

func onInterludeStart(ph components.PhaseID, rd *components.RoundData) bool {
	return ph == components.PhaseInterludeStart
}

func onInterlude(ph components.PhaseID, rd *components.RoundData) bool {
	return ph == components.PhaseInterlude && rd.Interlude > 0
}

func onInterludeEnd(ph components.PhaseID, rd *components.RoundData) bool {
	return ph == components.PhaseInterlude && rd.Interlude <= 0
}

func onRoundStart(ph components.PhaseID, rd *components.RoundData) bool {
	return ph == components.PhaseRoundStart
}

func onRound(ph components.PhaseID, rd *components.RoundData) bool {
	return ph == components.PhaseRound && rd.RoundWinner == components.NoWinner
}

func onRoundEnd(ph components.PhaseID, rd *components.RoundData) bool {
	return ph == components.PhaseRound && rd.RoundWinner != components.NoWinner
}

// activePhase evaluates every run criterion and returns the single matching
// phase. Panics on the exactly-one invariant being violated.
func (s *Simulation) activePhase() components.PhaseID {
	matched := 0
	var active components.PhaseID
	for _, c := range phaseCriteria {
		if c.pred(s.state.Phase, &s.state.Round) {
			matched++
			active = c.id
		}
	}
	if matched != 1 {
		panic(fmt.Sprintf("sim: %d phase criteria match (stored phase %v, interlude %d, round winner %d) at tick %d",
			matched, s.state.Phase, s.state.Round.Interlude, s.state.Round.RoundWinner, s.state.Tick))
	}
	return active
}

// setupInterlude is the InterludeStart one-shot: arm the pre-round countdown.
func (s *Simulation) setupInterlude() {
	s.state.Round.Interlude = config.Round.InterludeTicks
	s.state.Round.RoundWinner = components.NoWinner
	s.state.Phase = components.PhaseInterlude
}

// runInterlude ticks the countdown down. When it reaches zero the
// InterludeEnd criterion takes over on the next tick.
func (s *Simulation) runInterlude() {
	s.state.Round.Interlude--
}

// cleanupInterlude is the InterludeEnd one-shot: tear down interlude-only
// state and hand off to RoundStart.
func (s *Simulation) cleanupInterlude() {
	s.state.Round.Interlude = 0
	s.state.Phase = components.PhaseRoundStart
}

// cleanupRound is the RoundEnd one-shot: record the score, despawn the round
// entities and loop back to the next interlude. A match win is recorded here
// too; the simulation keeps looping regardless, since promotion to the win
// screen is the surrounding application's business.
func (s *Simulation) cleanupRound() {
	rd := &s.state.Round

	if rd.RoundWinner >= 0 {
		rd.Wins[rd.RoundWinner]++
		if rd.MatchWinner == components.NoWinner && rd.Wins[rd.RoundWinner] >= config.Round.MatchWinRounds {
			rd.MatchWinner = rd.RoundWinner
			rd.MatchEndTick = s.state.Tick
		}
	}

	s.despawnAll()

	rd.RoundNumber++
	rd.RoundWinner = components.NoWinner
	s.state.Phase = components.PhaseInterludeStart
}
