package sim

import (
	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
)

// updateRoles assigns the attacker/defender flags for this tick. The attacker
// slot alternates every RoleSwapTicks of elapsed round time, offset by the
// round number so the opening attacker also alternates between rounds.
//
// Runs before the input applier so the dash button already means "lunge" for
// the correct player on the tick a swap lands.
func (s *Simulation) updateRoles() {
	elapsed := config.Round.RoundTicks - s.state.Round.RoundTimer
	attacker := (s.state.Round.RoundNumber + elapsed/config.Round.RoleSwapTicks) % config.NumPlayers

	for i := range s.state.Players {
		p := &s.state.Players[i]
		if !p.Alive {
			continue
		}
		if i == attacker {
			p.Role = components.RoleAttacker
		} else {
			p.Role = components.RoleDefender
		}
	}
}
