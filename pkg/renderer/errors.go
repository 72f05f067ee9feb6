package renderer

import "errors"

var (
	// ErrInvalidDimensions is returned when the image or view plane size is not positive
	ErrInvalidDimensions = errors.New("invalid render dimensions")

	// ErrNonFiniteRadiance is returned when a pixel traces to NaN or infinity
	ErrNonFiniteRadiance = errors.New("non-finite radiance")

	// ErrWorkUnitPanic is returned when tracing a pixel panics
	ErrWorkUnitPanic = errors.New("pixel worker panicked")
)
