package matter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gobssn"
	"github.com/phil-mansfield/gobssn/background"
	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/tensor"
)

var (
	_ gobssn.Matter = Vacuum{}
	_ gobssn.Matter = &ScalarField{}
)

func scalarFields(
	t *testing.T, r []float64, phi, u, v, du float64,
) (*bssn.Vars, *bssn.D1) {
	n := len(r)
	numVars := bssn.NumVars + ScalarFieldVars
	state := make([]float64, numVars*n)
	dRows := make([][]float64, numVars)
	for i := range dRows { dRows[i] = make([]float64, n) }

	for x := 0; x < n; x++ {
		state[bssn.IdxPhi*n+x] = phi
		state[(bssn.NumVars+IdxU)*n+x] = u
		state[(bssn.NumVars+IdxV)*n+x] = v
		dRows[bssn.NumVars+IdxU][x] = du
	}

	vars, err := bssn.NewVars(state, numVars, n)
	require.NoError(t, err)
	d1, err := bssn.NewD1(dRows, n)
	require.NoError(t, err)
	return vars, d1
}

func TestVacuum(t *testing.T) {
	r := []float64{0.5, 1, 1.5}
	vars, d1 := scalarFields(t, r, 0, 1, 2, 3)

	em, err := Vacuum{}.EMTensor(r, vars, d1, background.NewFlatSpherical(r))
	require.NoError(t, err)
	assert.Equal(t, 0, Vacuum{}.NumVars())
	assert.Equal(t, []float64{0, 0, 0}, em.Rho)
	assert.Equal(t, make([]tensor.Vec, 3), em.SL)
}

func TestScalarField(t *testing.T) {
	r := []float64{0.5, 1, 2}
	bg := background.NewFlatSpherical(r)

	table := []struct {
		mass, phi, u, v, du float64
		rho, sr             float64
	}{
		{0, 0, 0, 0, 0, 0, 0},
		{2, 0, 0.5, 0, 0, 0.5, 0},
		{0, 0, 0, 3, 0, 4.5, 0},
		{0, 0, 0, 0, 2, 2, 0},
		{0, 0.25, 0, 0, 2, 2 * math.Exp(-1), 0},
		{1, 0, 1, 2, 3, 0.5 + 2 + 4.5, -6},
	}

	sf := &ScalarField{}
	for i, line := range table {
		sf.Mass = line.mass
		vars, d1 := scalarFields(t, r, line.phi, line.u, line.v, line.du)

		em, err := sf.EMTensor(r, vars, d1, bg)
		require.NoError(t, err)

		for x := range r {
			if math.Abs(em.Rho[x]-line.rho) > 1e-14 {
				t.Errorf("%d) Expected rho = %g. Got %g.", i, line.rho, em.Rho[x])
			}
			want := tensor.Vec{line.sr, 0, 0}
			if em.SL[x] != want {
				t.Errorf("%d) Expected S_i = %v. Got %v.", i, want, em.SL[x])
			}
		}
	}
}

func TestScalarFieldDegenerateMetric(t *testing.T) {
	r := []float64{0.5, 1, 2}
	vars, d1 := scalarFields(t, r, 0, 1, 0, 1)
	vars.HLL[1][0][0] = -1

	_, err := (&ScalarField{}).EMTensor(r, vars, d1, background.NewFlatSpherical(r))
	assert.ErrorIs(t, err, bssn.ErrDegenerateMetric)
	var pe *bssn.PointError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Point)
}

func TestScalarFieldMissingRows(t *testing.T) {
	r := []float64{1, 2}
	state := make([]float64, bssn.NumVars*len(r))
	vars, err := bssn.NewVars(state, bssn.NumVars, len(r))
	require.NoError(t, err)
	dRows := make([][]float64, bssn.NumVars)
	for i := range dRows { dRows[i] = make([]float64, len(r)) }
	d1, err := bssn.NewD1(dRows, len(r))
	require.NoError(t, err)

	_, err = (&ScalarField{}).EMTensor(r, vars, d1, background.NewFlatSpherical(r))
	assert.ErrorIs(t, err, bssn.ErrShapeMismatch)
}
