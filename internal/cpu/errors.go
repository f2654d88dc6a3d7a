package cpu

import "errors"

var (
	// ErrInvalidOpcode is returned when the fetched opcode byte has no handler.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrDivisionByZero is returned by the DIV and MOD families for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNoDevice is returned when a peripheral opcode runs without the device injected.
	ErrNoDevice = errors.New("peripheral device not connected")
)
