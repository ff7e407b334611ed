// Package config holds the validated configuration record produced from
// parsed command-line arguments and consumed by the uart package. It
// performs no parsing itself beyond checking that required fields are
// present; mcu does the per-field text parsing.
package config

import (
	"fmt"

	"github.com/pacmancoder/freepdk-gen/mcu"
)

// UartArgs is the subcommand-specific configuration for generating a
// software UART implementation. All fields are required except
// Tolerance (defaults to 1%) and TxFunctionName (defaults to the
// instance-derived name).
type UartArgs struct {
	Baud           uint32
	TxPort         mcu.Port
	TxPin          mcu.Pin
	InvertTx       bool
	RxPort         mcu.Port
	RxPin          mcu.Pin
	InvertRx       bool
	UartNum        uint8
	StopBits       mcu.StopBits
	Tolerance      float64
	TxFunctionName string
}

// DefaultTolerance is the maximum fractional deviation between the
// requested and achievable bit period allowed when Tolerance is unset.
const DefaultTolerance = 0.01

// AppConfig is the top-level parsed configuration: the target
// frequency plus the (currently singular) subcommand. Future
// subcommands would extend this with a tagged variant; today Uart is
// the only one, mirrored directly rather than wrapped in an interface.
type AppConfig struct {
	Freq mcu.Frequency
	Uart UartArgs
}

// ErrInvalidOptions is returned when a required field was not supplied.
var ErrInvalidOptions = fmt.Errorf("invalid generator options")

// Validate checks that all fields required for generation are present.
// UartNum has no invalid zero value (uart0 is a legitimate instance),
// so it is not checked here. A zero-valued Port is never produced by
// ParsePort, so it reliably indicates a missing flag; Baud is checked
// the same way since a real baud rate is never zero.
func (a AppConfig) Validate() error {
	if a.Freq == 0 {
		return ErrInvalidOptions
	}
	if a.Uart.TxPort == 0 || a.Uart.RxPort == 0 {
		return ErrInvalidOptions
	}
	if a.Uart.Baud == 0 {
		return ErrInvalidOptions
	}
	return nil
}

// ToleranceOrDefault returns Tolerance if set, otherwise
// DefaultTolerance.
func (u UartArgs) ToleranceOrDefault() float64 {
	if u.Tolerance == 0 {
		return DefaultTolerance
	}
	return u.Tolerance
}
