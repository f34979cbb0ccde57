/*package matter contains the matter models which source the BSSN
constraints. Each model computes the energy density and momentum density
measured by normal observers from the matter rows that follow the BSSN block
of a state vector.
*/
package matter

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/tensor"
)

// Rows of the scalar field within the matter block.
const (
	IdxU = iota
	IdxV

	ScalarFieldVars
)

// Vacuum has no matter fields and no sources.
type Vacuum struct{}

// ScalarField is a minimally coupled real scalar field u with potential
// V(u) = m^2 u^2 / 2. The second row, v, is the time derivative of u along
// the normal to the slice.
type ScalarField struct {
	Mass float64
}

// NumVars returns zero.
func (Vacuum) NumVars() int { return 0 }

// EMTensor returns zero sources on every point.
func (Vacuum) EMTensor(
	r []float64, vars *bssn.Vars, d1 *bssn.D1, bg bssn.Background,
) (*bssn.EMTensor, error) {
	return bssn.NewEMTensor(len(r)), nil
}

// NumVars returns the number of matter rows used by the scalar field.
func (sf *ScalarField) NumVars() int { return ScalarFieldVars }

// EMTensor computes
//
//	rho = v^2/2 + e^{-4 phi} bar gamma^ij d_i u d_j u / 2 + V(u)
//	S_i = -v d_i u.
func (sf *ScalarField) EMTensor(
	r []float64, vars *bssn.Vars, d1 *bssn.D1, bg bssn.Background,
) (*bssn.EMTensor, error) {
	n := len(r)
	if len(vars.Matter) < ScalarFieldVars || len(d1.Matter) < ScalarFieldVars {
		return nil, fmt.Errorf(
			"%w: scalar field needs %d matter rows, state has %d",
			bssn.ErrShapeMismatch, ScalarFieldVars, len(vars.Matter),
		)
	} else if vars.N != n || d1.N != n {
		return nil, fmt.Errorf(
			"%w: %d radii but fields have %d points",
			bssn.ErrShapeMismatch, n, vars.N,
		)
	}

	em := bssn.NewEMTensor(n)
	u, v, du := vars.Matter[IdxU], vars.Matter[IdxV], d1.Matter[IdxU]
	m2 := sf.Mass * sf.Mass

	ref := &bssn.Reference{}
	for x := 0; x < n; x++ {
		bg.ReferenceAt(x, ref)
		gLL := bssn.BarGammaLL(&vars.HLL[x], ref)
		gUU, err := bssn.BarGammaUU(&gLL)
		if err != nil { return nil, &bssn.PointError{ Point: x, Err: err } }

		kinetic := math.Exp(-4*vars.Phi[x]) * tensor.Quad(&gUU, &du[x], &du[x])
		em.Rho[x] = 0.5*v[x]*v[x] + 0.5*kinetic + 0.5*m2*u[x]*u[x]
		for i := 0; i < tensor.Dim; i++ {
			em.SL[x][i] = -v[x] * du[x][i]
		}
	}

	return em, nil
}
