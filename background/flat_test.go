package background

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/tensor"
)

func refAt(rad float64) *bssn.Reference {
	ref := &bssn.Reference{}
	NewFlatSpherical([]float64{rad}).ReferenceAt(0, ref)
	return ref
}

func TestFlatSphericalValues(t *testing.T) {
	table := []float64{0.1, 1, 7.5, -0.3}

	for _, rad := range table {
		ref := refAt(rad)
		r2 := rad * rad

		assert.Equal(t, tensor.Diag(tensor.Vec{1, r2, r2}), ref.HatGammaLL)
		assert.Equal(t, tensor.Vec{1, 1 / rad, 1 / rad}, ref.InvSV)
		assert.Equal(t, r2, ref.S[th][th])
		assert.Equal(t, rad, ref.S[r][ph])

		assert.Equal(t, 2*rad, ref.DS[th][th][r])
		assert.Equal(t, 2*rad, ref.DS[ph][ph][r])
		assert.Equal(t, 1.0, ref.DS[r][th][r])
		assert.Equal(t, 2.0, ref.D2S[th][th][r][r])
		assert.Equal(t, -2*r2, ref.D2S[ph][ph][th][th])
	}
}

// Radial derivatives of the stored quantities must agree with finite
// differences of the quantities themselves.
func TestFlatSphericalRadialDerivatives(t *testing.T) {
	h := 1e-5
	for _, rad := range []float64{0.3, 1, 4} {
		ref, lo, hi := refAt(rad), refAt(rad-h), refAt(rad+h)

		for i := 0; i < tensor.Dim; i++ {
			fd := (hi.InvSV[i] - lo.InvSV[i]) / (2 * h)
			assert.InDelta(t, fd, ref.DInvSV[i][r], 1e-6)

			for j := 0; j < tensor.Dim; j++ {
				fd := (hi.S[i][j] - lo.S[i][j]) / (2 * h)
				assert.InDelta(t, fd, ref.DS[i][j][r], 1e-6)

				for k := 0; k < tensor.Dim; k++ {
					fd := (hi.DS[i][j][k] - lo.DS[i][j][k]) / (2 * h)
					assert.InDelta(t, fd, ref.D2S[i][j][k][r], 1e-6)

					fd = (hi.HatChris[i][j][k] - lo.HatChris[i][j][k]) / (2 * h)
					assert.InDelta(t, fd, ref.DHatChris[i][j][k][r], 1e-5)
				}
			}
		}
	}
}

// On the equator the only non-zero metric derivatives are radial, so the
// Christoffel symbols follow from d_r g_ij alone.
func TestFlatSphericalChristoffel(t *testing.T) {
	for _, rad := range []float64{0.5, 2} {
		ref := refAt(rad)
		var dg tensor.Rank3
		dg[th][th][r], dg[ph][ph][r] = 2*rad, 2*rad
		gUU, err := ref.HatGammaLL.Invert()
		assert.NoError(t, err)

		for i := 0; i < tensor.Dim; i++ {
			for j := 0; j < tensor.Dim; j++ {
				for k := 0; k < tensor.Dim; k++ {
					sum := 0.0
					for l := 0; l < tensor.Dim; l++ {
						sum += 0.5 * gUU[i][l] *
							(dg[l][k][j] + dg[j][l][k] - dg[j][k][l])
					}
					assert.InDelta(t, sum, ref.HatChris[i][j][k], 1e-12,
						"Gamma^%d_%d%d at r = %g", i, j, k, rad)
				}
			}
		}
	}
}

func TestFlatSphericalNumPoints(t *testing.T) {
	bg := NewFlatSpherical([]float64{-0.5, 0.5, 1.5})
	assert.Equal(t, 3, bg.NumPoints())

	ref := &bssn.Reference{}
	bg.ReferenceAt(2, ref)
	assert.Equal(t, 1.5, ref.HatChris[r][th][th]*-1)
}
