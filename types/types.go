package types

// Object is the opaque handle type for interpreter-visible values. The HAL
// publishes pins and metadata through it without depending on interpreter
// internals.
type Object = any

// ------------------------
// Digital pin vocabulary
// ------------------------

type Direction uint8

const (
	DirInput Direction = iota
	DirOutput
)

func (d Direction) String() string {
	if d == DirOutput {
		return "output"
	}
	return "input"
}

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	}
	return "none"
}

// ------------------------
// Analog range
// ------------------------

// Analog values cross the dispatch boundary as a fixed 16-bit unsigned range.
// Scaling to physical units is the provider's job.
const AnalogMax uint16 = 0xFFFF
