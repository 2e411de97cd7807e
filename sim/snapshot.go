package sim

import (
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
)

var snapshotHandle codec.MsgpackHandle

// Snapshot serializes the full replicated state to an opaque byte form. The
// rollback collaborator stores one per tick and hands it back through
// Restore when a past tick must be resimulated.
func (s *Simulation) Snapshot() ([]byte, error) {
	var data []byte
	enc := codec.NewEncoderBytes(&data, &snapshotHandle)
	if err := enc.Encode(&s.state); err != nil {
		return nil, fmt.Errorf("encode snapshot at tick %d: %w", s.state.Tick, err)
	}
	return data, nil
}

// Restore overwrites the entire replicated state from a snapshot and
// rebuilds the derived collision space from it. Nothing of the prior state
// survives; a restore followed by the same input sequence replays the same
// ticks bit-identically.
func (s *Simulation) Restore(data []byte) error {
	var st State
	dec := codec.NewDecoderBytes(data, &snapshotHandle)
	if err := dec.Decode(&st); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s.state = st
	s.rebuildSpace()
	s.checksum = s.fold()
	return nil
}
