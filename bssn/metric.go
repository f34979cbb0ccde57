package bssn

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/gobssn/tensor"
)

// Physical constants in geometrized units.
const (
	TwoThirds = 2.0 / 3.0
	EightPiG  = 8 * math.Pi
)

// ErrDegenerateMetric is returned when the conformal metric cannot be
// inverted.
var ErrDegenerateMetric = errors.New("bssn: degenerate conformal metric")

// PointError ties an error to a single grid point.
type PointError struct {
	Point int
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("point %d: %v", e.Point, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

// BarGammaLL returns the conformal metric bar gamma_ij = hat gamma_ij +
// h_ij s_ij from the rescaled perturbation h.
func BarGammaLL(h *tensor.Mat, ref *Reference) tensor.Mat {
	eps := tensor.Hadamard(h, &ref.S)
	var g tensor.Mat
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			g[i][j] = ref.HatGammaLL[i][j] + eps[i][j]
		}
	}
	return g
}

// BarGammaUU returns the inverse conformal metric. A metric with a
// non-positive determinant is degenerate even when it can be inverted.
func BarGammaUU(gLL *tensor.Mat) (tensor.Mat, error) {
	if det := gLL.Det(); !(det > 0) {
		return tensor.Mat{}, fmt.Errorf("%w: det = %g", ErrDegenerateMetric, det)
	}
	gUU, err := gLL.Invert()
	if err != nil {
		return gUU, fmt.Errorf("%w: %v", ErrDegenerateMetric, err)
	}
	return gUU, nil
}
