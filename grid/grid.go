/*package grid implements the one dimensional radial grid that BSSN states
are sampled on, along with its finite difference operators and inner boundary
conditions.

The grid is cell-centred and extends across the origin by Ghosts points, so
r = 0 is never a grid point and the ghost radii are negative:

	r_x = (x - Ghosts + 1/2) dr,    dr = RMax / (Points - Ghosts).
*/
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gobssn/bssn"
)

// Parity is the reflection symmetry of a field across r = 0.
type Parity int

const (
	Even Parity = iota
	Odd
)

// Grid is a radial grid with inner ghost points.
type Grid struct {
	RMax, Dr      float64
	Points, Ghosts int
	Vars          int

	r []float64
}

// New returns a grid with the given outer radius, total number of points
// (ghosts included), number of inner ghosts and number of variables in each
// state vector.
func New(rMax float64, points, ghosts, numVars int) (*Grid, error) {
	switch {
	case rMax <= 0:
		return nil, fmt.Errorf("grid: RMax = %g must be positive", rMax)
	case ghosts < 1:
		return nil, fmt.Errorf("grid: need at least one ghost point, got %d", ghosts)
	case points <= 2*ghosts+4:
		return nil, fmt.Errorf(
			"grid: %d points is too few for %d ghosts", points, ghosts,
		)
	case numVars < bssn.NumVars:
		return nil, fmt.Errorf(
			"grid: %d variables cannot hold the %d BSSN variables",
			numVars, bssn.NumVars,
		)
	}

	g := &Grid{ RMax: rMax, Points: points, Ghosts: ghosts, Vars: numVars }
	g.Dr = rMax / float64(points-ghosts)

	lo := (0.5 - float64(ghosts)) * g.Dr
	hi := (float64(points-ghosts) - 0.5) * g.Dr
	g.r = floats.Span(make([]float64, points), lo, hi)

	return g, nil
}

// R returns the radii of the grid points. The returned slice must not be
// modified.
func (g *Grid) R() []float64 { return g.r }

// NumPoints returns the total number of grid points, ghosts included.
func (g *Grid) NumPoints() int { return g.Points }

// NumVars returns the number of variables in each state vector.
func (g *Grid) NumVars() int { return g.Vars }

// D1 returns the first radial derivatives of every variable in state.
func (g *Grid) D1(state []float64) (*bssn.D1, error) {
	rows, err := bssn.Rows(state, g.Vars, g.Points)
	if err != nil { return nil, err }

	out := make([][]float64, len(rows))
	for v := range rows {
		out[v] = make([]float64, g.Points)
		DerivAt(rows[v], g.Dr, out[v])
	}
	return bssn.NewD1(out, g.Points)
}

// D2 returns the second radial derivatives of every variable in state.
func (g *Grid) D2(state []float64) (*bssn.D2, error) {
	rows, err := bssn.Rows(state, g.Vars, g.Points)
	if err != nil { return nil, err }

	out := make([][]float64, len(rows))
	for v := range rows {
		out[v] = make([]float64, g.Points)
		SecondDerivAt(rows[v], g.Dr, out[v])
	}
	return bssn.NewD2(out, g.Points)
}

// FillInnerBoundary overwrites the ghost points of f with the even-parity
// reflection of the interior.
func (g *Grid) FillInnerBoundary(f []float64) {
	g.FillInnerBoundaryParity(f, Even)
}

// FillInnerBoundaryParity overwrites the ghost points of f with the
// reflection of the interior values, f(-r) = +/- f(r).
func (g *Grid) FillInnerBoundaryParity(f []float64, parity Parity) {
	if len(f) != g.Points {
		panic(fmt.Sprintf(
			"grid: field has length %d, but grid has %d points",
			len(f), g.Points,
		))
	}

	sign := 1.0
	if parity == Odd { sign = -1 }

	for k := 0; k < g.Ghosts; k++ {
		f[g.Ghosts-1-k] = sign * f[g.Ghosts+k]
	}
}
