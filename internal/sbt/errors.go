package sbt

import (
	"errors"

	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidInput is returned when a batch cannot be classified: the
	// series lengths differ or a value is NaN or infinite.
	ErrInvalidInput = eris.New("sbt: invalid input")

	// ErrInvalidRenderMode is returned when a chart is requested in a mode
	// other than colored or outline.
	ErrInvalidRenderMode = eris.New("sbt: invalid render mode")
)

// IsInvalidInput reports whether err (or anything it wraps) is ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidRenderMode reports whether err (or anything it wraps) is
// ErrInvalidRenderMode.
func IsInvalidRenderMode(err error) bool {
	return errors.Is(err, ErrInvalidRenderMode)
}
