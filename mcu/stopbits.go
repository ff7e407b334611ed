package mcu

import "fmt"

// StopBits is the width of the generated stop bit, expressed as a
// multiple of the bit period.
type StopBits int

const (
	// StopBitsOne is a single stop bit (the default).
	StopBitsOne StopBits = iota
	// StopBitsOneAndHalf is a stop bit 1.5 bit periods wide.
	StopBitsOneAndHalf
	// StopBitsTwo is a stop bit two full bit periods wide.
	StopBitsTwo
)

// Multiplier returns the stop bit's width as a multiple of one bit
// period, e.g. 1.5 for StopBitsOneAndHalf.
func (s StopBits) Multiplier() float64 {
	switch s {
	case StopBitsOne:
		return 1
	case StopBitsOneAndHalf:
		return 1.5
	case StopBitsTwo:
		return 2
	default:
		panic(fmt.Sprintf("invalid StopBits value: %d", s))
	}
}

// ParseStopBits matches s exactly against the three literal stop-bit
// widths the generator supports: "1", "1.5", "2".
func ParseStopBits(s string) (StopBits, error) {
	switch s {
	case "1":
		return StopBitsOne, nil
	case "1.5":
		return StopBitsOneAndHalf, nil
	case "2":
		return StopBitsTwo, nil
	default:
		return 0, fmt.Errorf("invalid stop bits value: %q", s)
	}
}

// String implements fmt.Stringer, rendering the canonical literal.
func (s StopBits) String() string {
	switch s {
	case StopBitsOne:
		return "1"
	case StopBitsOneAndHalf:
		return "1.5"
	case StopBitsTwo:
		return "2"
	default:
		return fmt.Sprintf("StopBits(%d)", int(s))
	}
}
