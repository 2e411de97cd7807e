// Package config holds simulation tuning and the netcode constants shared by
// both peers. Every value here feeds the deterministic pipeline, so the two
// peers must be built from the same values or their simulations diverge on
// the first tick that reads a mismatched field.
package config

// Netcode constants. These mirror the session parameters negotiated at
// connect time and are fixed for the lifetime of a match.
const (
	// NumPlayers is fixed; the whole data model is sized for a duel.
	NumPlayers = 2

	// TickRate is the fixed simulation rate in ticks per second.
	TickRate = 60

	// InputDelay is the number of ticks between sampling an input and the
	// first tick it is applied. It buys the transport time to deliver the
	// record before the remote peer needs it.
	InputDelay = 2

	// MaxPrediction is how many ticks the simulation may run ahead of the
	// last confirmed remote input before it must stall.
	MaxPrediction = 12

	// CheckDistance is the cadence, in ticks, at which peers cross-compare
	// state checksums to detect desynchronization.
	CheckDistance = 2
)

// TickSeconds is the fixed duration of one simulation tick.
const TickSeconds = 1.0 / float64(TickRate)
