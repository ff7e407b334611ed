package mcu

import (
	"fmt"
	"strconv"
)

// Pin is a GPIO pin number in [0, 7].
type Pin uint8

// MaxPin is the highest valid pin number on a single port.
const MaxPin = 7

// ParsePin parses s as an unsigned decimal pin number and rejects
// anything above MaxPin.
func ParsePin(s string) (Pin, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid pin number: %q", s)
	}
	if v > MaxPin {
		return 0, fmt.Errorf("pin can't be bigger than %d: %d", MaxPin, v)
	}
	return Pin(v), nil
}

// Num returns the pin as a plain integer.
func (p Pin) Num() uint8 {
	return uint8(p)
}
