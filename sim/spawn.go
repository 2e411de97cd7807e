package sim

import (
	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
	"github.com/arcadewire/tagduel/leveldata"
)

// startRound is the RoundStart one-shot: materialize players and world
// geometry from the arena configuration and arm the round timer. Pure
// construction — every field is a function of (arena, round number).
func (s *Simulation) startRound() {
	s.spawnPlayers()
	s.spawnWorld()

	s.state.Round.RoundTimer = config.Round.RoundTicks
	s.state.Round.RoundWinner = components.NoWinner
	s.state.Phase = components.PhaseRound
}

// spawnPlayers builds both player entities at their spawn slots. The opening
// attacker alternates with the round number so neither side opens every
// round on offense.
func (s *Simulation) spawnPlayers() {
	attacker := s.state.Round.RoundNumber % config.NumPlayers

	for i := range s.state.Players {
		sp := s.arena.Spawns[i]
		pos := components.Vector{X: sp.X, Y: sp.Y}

		role := components.RoleDefender
		if i == attacker {
			role = components.RoleAttacker
		}

		// Face the opposing spawn slot.
		facing := components.Vector{X: 1}
		if sp.X > s.arena.Spawns[(i+1)%config.NumPlayers].X {
			facing.X = -1
		}

		s.state.Players[i] = components.PlayerState{
			Index:   i,
			Pos:     pos,
			PrevPos: pos,
			Facing:  facing,
			Role:    role,
			Alive:   true,
		}
	}
}

// spawnWorld copies the arena's wall set into the replicated state and
// rebuilds the derived collision space over it.
func (s *Simulation) spawnWorld() {
	s.state.Walls = append([]leveldata.WallRect(nil), s.arena.Walls...)
	s.rebuildSpace()
}

// despawnAll resets the round-scoped entities: players back to the zero
// value, world geometry cleared, collision space dropped.
func (s *Simulation) despawnAll() {
	for i := range s.state.Players {
		s.state.Players[i] = components.PlayerState{Index: i}
	}
	s.state.Walls = nil
	s.rebuildSpace()
}
