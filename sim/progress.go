package sim

import (
	"github.com/arcadewire/tagduel/components"
)

// evaluateProgress runs after physics and decides whether the round has
// ended and who won it. It only writes the result into RoundData; the
// RoundEnd criterion picks the result up on the next tick.
//
// The evaluation is order-independent over the player set: roles, the alive
// set and the contact test are each computed from full scans before anything
// is decided, so permuting player order cannot change the outcome.
//
// Round end rules:
//   - contact: the attacker touching the defender eliminates the defender,
//     and the sole survivor takes the round
//   - timeout: the round timer expiring hands the round to the surviving
//     defender (they outran the chase)
func (s *Simulation) evaluateProgress() {
	rd := &s.state.Round

	if rd.RoundTimer > 0 {
		rd.RoundTimer--
	}

	// Resolve roles over the full alive set.
	attacker, defender := components.NoWinner, components.NoWinner
	for i := range s.state.Players {
		p := &s.state.Players[i]
		if !p.Alive {
			continue
		}
		if p.Role == components.RoleAttacker {
			attacker = i
		} else {
			defender = i
		}
	}

	// Contact elimination.
	if attacker != components.NoWinner && defender != components.NoWinner &&
		overlap(&s.state.Players[attacker], &s.state.Players[defender]) {
		s.state.Players[defender].Alive = false
	}

	// Decide the outcome from the resulting alive set, scanning all players
	// rather than stopping at the first hit.
	aliveCount := 0
	survivor := components.NoWinner
	for i := range s.state.Players {
		if s.state.Players[i].Alive {
			aliveCount++
			survivor = i
		}
	}

	switch {
	case aliveCount == 0:
		rd.RoundWinner = components.Draw
	case aliveCount == 1:
		rd.RoundWinner = survivor
	case rd.RoundTimer <= 0:
		rd.RoundWinner = defender
	}
}
