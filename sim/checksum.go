package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// fold digests every replicated field into one fixed-width value for
// cross-peer comparison. Fields are written in a fixed order (tick, phase,
// round data, then each player in index order) through an order-sensitive
// hash, so any single-bit divergence between peers shows up as a different
// checksum for that tick.
//
// Wall geometry is excluded on purpose: it is copied verbatim from the
// shared arena configuration and carries no per-peer state.
func (s *Simulation) fold() uint64 {
	d := xxhash.New()
	var buf [8]byte

	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		d.Write(buf[:])
	}
	putI64 := func(v int64) { putU64(uint64(v)) }
	putF64 := func(v float64) { putU64(math.Float64bits(v)) }
	putBool := func(v bool) {
		if v {
			putU64(1)
		} else {
			putU64(0)
		}
	}

	putU64(s.state.Tick)
	putU64(uint64(s.state.Phase))

	rd := &s.state.Round
	putI64(int64(rd.Interlude))
	putI64(int64(rd.RoundTimer))
	putI64(int64(rd.RoundNumber))
	for _, w := range rd.Wins {
		putI64(int64(w))
	}
	putI64(int64(rd.RoundWinner))
	putI64(int64(rd.MatchWinner))
	putU64(rd.MatchEndTick)

	for i := range s.state.Players {
		p := &s.state.Players[i]
		putF64(p.Pos.X)
		putF64(p.Pos.Y)
		putF64(p.PrevPos.X)
		putF64(p.PrevPos.Y)
		putF64(p.Vel.X)
		putF64(p.Vel.Y)
		putF64(p.Facing.X)
		putF64(p.Facing.Y)
		putU64(uint64(p.Role))
		putBool(p.Alive)
		putI64(int64(p.DashCooldown))
	}

	return d.Sum64()
}
