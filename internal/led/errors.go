package led

import "errors"

var (
	// ErrConstruction is returned when the channels cannot be exported or configured while creating a Driver.
	ErrConstruction = errors.New("unable to set up led")
	// ErrValidation is returned for a brightness or duty cycle outside of 0..1. Nothing is changed when it is returned.
	ErrValidation = errors.New("invalid value")
	// ErrHardwareWrite is returned when a channel write failed after validation passed.
	ErrHardwareWrite = errors.New("pwm write failed")
	// ErrTeardown is returned when disabling or unexporting failed while closing.
	ErrTeardown = errors.New("unable to release led")
	ErrClosed   = errors.New("led is closed")
)
