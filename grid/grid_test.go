package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gobssn"
	"github.com/phil-mansfield/gobssn/bssn"
)

var _ gobssn.Grid = &Grid{}

func TestNewValidation(t *testing.T) {
	table := []struct {
		rMax                   float64
		points, ghosts, numVars int
		valid                  bool
	}{
		{10, 20, 3, bssn.NumVars, true},
		{10, 11, 3, bssn.NumVars, true},
		{10, 10, 3, bssn.NumVars, false},
		{0, 20, 3, bssn.NumVars, false},
		{-1, 20, 3, bssn.NumVars, false},
		{10, 20, 0, bssn.NumVars, false},
		{10, 20, 3, bssn.NumVars - 1, false},
	}

	for i, line := range table {
		_, err := New(line.rMax, line.points, line.ghosts, line.numVars)
		if (err == nil) != line.valid {
			t.Errorf("%d) Expected valid = %v. Got err = %v.", i, line.valid, err)
		}
	}
}

func TestCoordinates(t *testing.T) {
	g, err := New(8, 19, 3, bssn.NumVars)
	require.NoError(t, err)

	r := g.R()
	require.Len(t, r, 19)
	assert.InDelta(t, 0.5, g.Dr, 1e-15)
	assert.InDelta(t, -0.25, r[2], 1e-14)
	assert.InDelta(t, 0.25, r[3], 1e-14)
	assert.InDelta(t, -1.25, r[0], 1e-14)
	assert.InDelta(t, 7.75, r[18], 1e-14)

	// Ghosts mirror the interior exactly.
	for k := 0; k < g.Ghosts; k++ {
		assert.InDelta(t, -r[g.Ghosts+k], r[g.Ghosts-1-k], 1e-14)
	}
}

func TestDerivAtPolynomials(t *testing.T) {
	n, dx := 9, 0.1
	xs := make([]float64, n)
	for i := range xs { xs[i] = 0.3 + float64(i)*dx }

	eval := func(f func(float64) float64) []float64 {
		out := make([]float64, n)
		for i := range xs { out[i] = f(xs[i]) }
		return out
	}

	quad := eval(func(x float64) float64 { return 3*x*x - 2*x + 1 })
	dQuad := eval(func(x float64) float64 { return 6*x - 2 })
	cubic := eval(func(x float64) float64 { return x*x*x - x })
	dCubic := eval(func(x float64) float64 { return 3*x*x - 1 })
	d2Cubic := eval(func(x float64) float64 { return 6 * x })

	out := make([]float64, n)
	DerivAt(quad, dx, out)
	assert.InDeltaSlice(t, dQuad, out, 1e-10)

	SecondDerivAt(quad, dx, out)
	for i := range out { assert.InDelta(t, 6, out[i], 1e-8) }

	// Fourth order stencils are exact for cubics in the interior.
	DerivAt(cubic, dx, out)
	for i := 2; i < n-2; i++ { assert.InDelta(t, dCubic[i], out[i], 1e-10) }

	SecondDerivAt(cubic, dx, out)
	for i := 2; i < n-2; i++ { assert.InDelta(t, d2Cubic[i], out[i], 1e-8) }
	assert.InDelta(t, d2Cubic[0], out[0], 1e-8)
	assert.InDelta(t, d2Cubic[n-1], out[n-1], 1e-8)
}

func TestFillInnerBoundary(t *testing.T) {
	g, err := New(1, 10, 2, bssn.NumVars)
	require.NoError(t, err)

	f := []float64{-1, -1, 3, 4, 5, 6, 7, 8, 9, 10}
	g.FillInnerBoundary(f)
	assert.Equal(t, []float64{4, 3, 3, 4, 5, 6, 7, 8, 9, 10}, f)

	f = []float64{-1, -1, 3, 4, 5, 6, 7, 8, 9, 10}
	g.FillInnerBoundaryParity(f, Odd)
	assert.Equal(t, []float64{-4, -3, 3, 4, 5, 6, 7, 8, 9, 10}, f)

	assert.Panics(t, func() { g.FillInnerBoundary(make([]float64, 9)) })
}

func TestGridDerivatives(t *testing.T) {
	numVars := bssn.NumVars + 1
	g, err := New(4, 20, 2, numVars)
	require.NoError(t, err)

	n, r := g.NumPoints(), g.R()
	state := make([]float64, numVars*n)
	for x := 0; x < n; x++ {
		state[bssn.IdxHTT*n+x] = r[x] * r[x]
		state[bssn.IdxK*n+x] = 2 * r[x]
		state[bssn.NumVars*n+x] = -r[x] * r[x]
	}

	d1, err := g.D1(state)
	require.NoError(t, err)
	d2, err := g.D2(state)
	require.NoError(t, err)

	for x := 0; x < n; x++ {
		assert.InDelta(t, 2*r[x], d1.HLL[x][1][1][0], 1e-10)
		assert.Equal(t, 0.0, d1.HLL[x][1][1][1])
		assert.InDelta(t, 2, d1.K[x][0], 1e-10)
		assert.InDelta(t, -2*r[x], d1.Matter[0][x][0], 1e-10)
		assert.InDelta(t, 2, d2.HLL[x][1][1][0][0], 1e-8)
		assert.Equal(t, 0.0, d2.Phi[x][0][0])
	}

	_, err = g.D1(state[1:])
	assert.True(t, errors.Is(err, bssn.ErrShapeMismatch))
	_, err = g.D2(append(state, 0))
	assert.True(t, errors.Is(err, bssn.ErrShapeMismatch))
}
