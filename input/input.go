// Package input decodes the per-player input bitmask exchanged between peers.
//
// Bit layout (bit-exact contract with the input producer):
//
//	bit0 up, bit1 down, bit2 left, bit3 right, bit4 action
package input

// Bits is one player's input for one frame.
type Bits uint8

const (
	Up Bits = 1 << iota
	Down
	Left
	Right
	Action
)

// Status is the session layer's confidence in an input.
type Status uint8

const (
	Confirmed Status = iota
	Predicted
	Disconnected
)

func (s Status) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Predicted:
		return "predicted"
	case Disconnected:
		return "disconnected"
	}
	return "status(?)"
}

// PlayerInput is what the session layer hands the core once per frame per player.
type PlayerInput struct {
	Bits   Bits   `codec:"b"`
	Status Status `codec:"s"`
}

// Effective returns the bits the simulation should act on. Disconnected players
// do nothing.
func Effective(b Bits, status Status) Bits {
	switch status {
	case Confirmed, Predicted:
		return b
	default:
		return 0
	}
}

// Effective is shorthand for Effective(p.Bits, p.Status).
func (p PlayerInput) Effective() Bits {
	return Effective(p.Bits, p.Status)
}

func (b Bits) Has(flag Bits) bool { return b&flag != 0 }

// Horizontal returns -1 for left, +1 for right, 0 for neither or both.
func (b Bits) Horizontal() float32 {
	return axis(b.Has(Left), b.Has(Right))
}

// Vertical returns -1 for down, +1 for up, 0 for neither or both.
func (b Bits) Vertical() float32 {
	return axis(b.Has(Down), b.Has(Up))
}

func axis(neg, pos bool) float32 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	}
	return 0
}
