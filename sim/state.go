// Package sim is the deterministic per-tick simulation core: the round
// lifecycle state machine and the fixed gameplay pipeline (role update →
// input application → physics → progress evaluation → checksum) that must
// produce bit-identical results on both peers, whether a tick is run live or
// replayed during a rollback.
package sim

import (
	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
	"github.com/arcadewire/tagduel/leveldata"
)

// State is the complete replicated simulation state. Everything any pipeline
// system reads across a tick boundary lives here and nowhere else; the
// snapshot codec serializes exactly this struct, so a restored State replays
// identically. Values that exist outside State must be derivable from it
// (the collision space) or never cross a tick boundary (per-tick forces).
type State struct {
	// Tick advances exactly once per pipeline invocation. Replayed
	// invocations restart from a restored value and re-count the same ticks.
	Tick uint64

	// Phase is the stored lifecycle phase. The active phase for a tick is
	// derived from (Phase, Round) by the dispatch predicates in round.go.
	Phase components.PhaseID

	Round components.RoundData

	Players [config.NumPlayers]components.PlayerState

	// Walls is the world geometry for the live round, copied from the arena
	// at round start and cleared at round cleanup.
	Walls []leveldata.WallRect
}
