package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned when a coordinate falls outside the lattice.
	ErrOutOfRange = errors.New("core: coordinate out of range")
	// ErrInvalidProbability is returned for probabilities outside [0, 1].
	ErrInvalidProbability = errors.New("core: probability must lie in [0, 1]")
	// ErrEmptyCandidateSet is returned when a uniform choice has nothing to pick from.
	ErrEmptyCandidateSet = errors.New("core: empty candidate set")
	// ErrInvalidConfig is returned for configuration values that cannot produce a valid run.
	ErrInvalidConfig = errors.New("core: invalid configuration")
	// ErrUnknownPattern is returned when a neighbourhood name cannot be parsed.
	ErrUnknownPattern = errors.New("core: unknown neighbourhood pattern")
)

// RangeError reports an access outside the lattice bounds.
type RangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("core: coordinate (%d,%d) outside %dx%d lattice", e.Row, e.Col, e.Rows, e.Cols)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// ValidateProbability checks that p is a usable probability. The name is
// included in the returned error so startup failures point at the culprit.
func ValidateProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%s=%v: %w", name, p, ErrInvalidProbability)
	}
	return nil
}
