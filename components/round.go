package components

import (
	"fmt"

	"github.com/arcadewire/tagduel/config"
)

// PhaseID identifies one state of the round lifecycle state machine.
//
// Only InterludeStart, Interlude, RoundStart and Round are ever stored in the
// replicated state; InterludeEnd and RoundEnd are derived phases that the
// dispatch predicates select from (stored phase, RoundData), so a stored
// phase plus its round data always names exactly one active phase.
type PhaseID uint8

const (
	PhaseInterludeStart PhaseID = iota
	PhaseInterlude
	PhaseInterludeEnd
	PhaseRoundStart
	PhaseRound
	PhaseRoundEnd
)

func (p PhaseID) String() string {
	switch p {
	case PhaseInterludeStart:
		return "InterludeStart"
	case PhaseInterlude:
		return "Interlude"
	case PhaseInterludeEnd:
		return "InterludeEnd"
	case PhaseRoundStart:
		return "RoundStart"
	case PhaseRound:
		return "Round"
	case PhaseRoundEnd:
		return "RoundEnd"
	}
	return fmt.Sprintf("PhaseID(%d)", uint8(p))
}

// Winner sentinels used in RoundData. Real winners are player indexes >= 0.
const (
	NoWinner = -1
	Draw     = -2
)

// RoundData is the round-scoped mutable state: phase timers, scores and the
// declared outcomes. It is created when a match starts, mutated by the
// progress evaluator and the phase transition logic, and persists across
// rounds so wins accumulate. A full match restart means a fresh simulation.
type RoundData struct {
	// Interlude is the pre-round countdown, in ticks remaining.
	Interlude int

	// RoundTimer is the gameplay time remaining in the live round, in ticks.
	// The timeout rule fires when it reaches zero.
	RoundTimer int

	// RoundNumber counts completed rounds and selects the opening attacker.
	RoundNumber int

	// Wins is the accumulated round wins per player index.
	Wins [config.NumPlayers]int

	// RoundWinner is the declared outcome of the live round: NoWinner while
	// undecided, a player index, or Draw.
	RoundWinner int

	// MatchWinner is set once a player reaches the match win threshold.
	// MatchEndTick records the tick it was decided on, so the event can be
	// surfaced only after that tick is confirmed (rollback-safe).
	MatchWinner  int
	MatchEndTick uint64
}
