package components

// Buttons is the packed button state of one input record. The set is fixed so
// a record fits a single byte on the wire.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonDash
)

// Input is one player's sampled controls for a single tick. It is the only
// thing the peers exchange per tick; everything else is derived from it
// deterministically. An Input sampled at tick T is first applied at
// T+InputDelay (see the rollback package), and a missing record defaults to
// the zero Input (nothing pressed).
type Input struct {
	Buttons Buttons
}

// Pressed reports whether all bits in b are held.
func (in Input) Pressed(b Buttons) bool {
	return in.Buttons&b == b
}

// AxisX returns the horizontal move direction: -1, 0 or 1.
// Opposing buttons cancel.
func (in Input) AxisX() float64 {
	var x float64
	if in.Buttons&ButtonLeft != 0 {
		x -= 1
	}
	if in.Buttons&ButtonRight != 0 {
		x += 1
	}
	return x
}

// AxisY returns the vertical move direction: -1 (up), 0 or 1 (down).
func (in Input) AxisY() float64 {
	var y float64
	if in.Buttons&ButtonUp != 0 {
		y -= 1
	}
	if in.Buttons&ButtonDown != 0 {
		y += 1
	}
	return y
}

// Encode packs the record into its wire byte.
func (in Input) Encode() byte {
	return byte(in.Buttons)
}

// DecodeInput unpacks a wire byte into an input record.
func DecodeInput(b byte) Input {
	return Input{Buttons: Buttons(b)}
}
