package gobssn

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/gobssn/bssn"
)

var (
	// ErrNoSlices is returned when a batch contains no time slices.
	ErrNoSlices = errors.New("gobssn: no time slices")
	// ErrContract is returned when a Grid, Background, or Matter returns
	// data whose shape does not agree with the grid.
	ErrContract = errors.New("gobssn: collaborator broke its contract")

	ErrShapeMismatch    = bssn.ErrShapeMismatch
	ErrDegenerateMetric = bssn.ErrDegenerateMetric
)

// SliceError records where in a batch an evaluation failed. Point is -1 if
// the failure was not tied to a single grid point.
type SliceError struct {
	Slice, Point int
	Time         float64
	Err          error
}

func (e *SliceError) Error() string {
	if e.Point < 0 {
		return fmt.Sprintf("slice %d (t = %g): %v", e.Slice, e.Time, e.Err)
	}
	return fmt.Sprintf(
		"slice %d (t = %g), point %d: %v", e.Slice, e.Time, e.Point, e.Err,
	)
}

func (e *SliceError) Unwrap() error { return e.Err }
