package imageview

// Default oscillator bounds used by the demo.
const (
	DefaultLowerBound = 0
	DefaultUpperBound = 250
)

// Oscillator is a bounded triangle-wave counter.
//
// Each Step moves the value one unit in the current direction. The direction
// reverses once the value exceeds the upper bound or reaches the lower bound,
// so the value overshoots the upper bound by one before turning back:
// with bounds (0, 250] the sequence is 1, 2, ..., 251, 250, ..., 0, 1, ...
//
// The zero value is not usable; create oscillators with NewOscillator.
type Oscillator struct {
	value     int
	direction int
	lower     int
	upper     int
	turned    bool
}

// NewOscillator returns an oscillator at value 0 moving upward.
func NewOscillator(lower, upper int) *Oscillator {
	return &Oscillator{
		direction: 1,
		lower:     lower,
		upper:     upper,
	}
}

// Step advances the oscillator by one tick and returns the new value.
func (o *Oscillator) Step() int {
	o.value += o.direction
	o.turned = o.value > o.upper || o.value <= o.lower
	if o.turned {
		o.direction = -o.direction
	}
	return o.value
}

// Value returns the current value without stepping.
func (o *Oscillator) Value() int { return o.value }

// Direction returns +1 or -1.
func (o *Oscillator) Direction() int { return o.direction }

// Turned reports whether the most recent Step reversed the direction.
func (o *Oscillator) Turned() bool { return o.turned }

// Brightness returns the value as an 8-bit channel (value mod 256).
func (o *Oscillator) Brightness() uint8 { return uint8(o.value) }
