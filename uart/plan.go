// Package uart implements the timing synthesiser: it turns a clock
// frequency, baud rate and stop-bit width into a frozen Plan describing
// exactly how many clock cycles separate each bit edge of the
// generated software UART, and decomposes each such interval into a
// wait-loop iteration count plus a minimal instruction tail.
package uart

import (
	"math"

	"github.com/pacmancoder/freepdk-gen/config"
	"github.com/pacmancoder/freepdk-gen/mcu"
)

// Plan is the frozen, fully validated output of the synthesiser. It is
// built once by New and never mutated afterwards.
type Plan struct {
	Frequency mcu.Frequency
	Baud      uint32

	ClocksPerBit     uint32
	ClocksPerHalfBit uint32
	ClocksPerStopBit uint32

	// Deviation is the fractional rounding error between the requested
	// and achievable clocks-per-bit, i.e. |ClocksPerBit-expected|/expected.
	Deviation float64

	TxPort   mcu.Port
	TxPin    mcu.Pin
	InvertTx bool

	RxPort   mcu.Port
	RxPin    mcu.Pin
	InvertRx bool

	UartNum        uint8
	StopBits       mcu.StopBits
	TxFunctionName string
}

// New validates args against freq and produces a Plan, or one of the
// typed errors in errors.go. The steps below follow spec.md §4.2
// exactly: clocks-per-bit is computed and range-checked before the
// stop-bit and half-bit intervals are derived from the same expected
// (unrounded) clocks-per-bit value, so all three intervals share one
// deviation bound.
func New(args config.UartArgs, freq mcu.Frequency) (*Plan, error) {
	expected := float64(freq.Hz()) / float64(args.Baud)
	clocksPerBit := uint32(math.Round(expected))

	if clocksPerBit > MaxClocksPerBit {
		return nil, TooManyClocksPerBit{N: clocksPerBit}
	}
	if clocksPerBit < MinClocksPerBit {
		return nil, VeryFewClocksPerBit{N: clocksPerBit}
	}

	deviation := math.Abs(float64(clocksPerBit)-expected) / expected
	tolerance := args.ToleranceOrDefault()
	if deviation > tolerance {
		return nil, TooBigClockDeviation{Tolerance: tolerance}
	}

	clocksPerStopBit := uint32(math.Round(expected * args.StopBits.Multiplier()))
	if clocksPerStopBit > MaxClocksPerBit {
		return nil, TooManyClocksPerStopBit{N: clocksPerStopBit}
	}

	clocksPerHalfBit := uint32(math.Round(expected * 0.5))
	if clocksPerHalfBit < MinClocksPerBit {
		return nil, VeryFewClocksPerHalfBit{N: clocksPerHalfBit}
	}

	return &Plan{
		Frequency:        freq,
		Baud:             args.Baud,
		ClocksPerBit:     clocksPerBit,
		ClocksPerHalfBit: clocksPerHalfBit,
		ClocksPerStopBit: clocksPerStopBit,
		Deviation:        deviation,
		TxPort:           args.TxPort,
		TxPin:            args.TxPin,
		InvertTx:         args.InvertTx,
		RxPort:           args.RxPort,
		RxPin:            args.RxPin,
		InvertRx:         args.InvertRx,
		UartNum:          args.UartNum,
		StopBits:         args.StopBits,
		TxFunctionName:   args.TxFunctionName,
	}, nil
}

// BitPeriodSeconds returns the time, in seconds, spent per bit given
// the plan's frequency and clocks-per-bit.
func (p *Plan) BitPeriodSeconds() float64 {
	return float64(p.ClocksPerBit) / float64(p.Frequency.Hz())
}
