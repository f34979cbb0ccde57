/*package background contains reference ("hat") geometries for the BSSN
constraint diagnostics.

Only flat space in spherical coordinates is implemented. Quantities are
evaluated on the equator, theta = pi/2, where a spherically symmetric
solution is fully described by its radial profile. Angular derivatives of the
scaling vector and of the hat Christoffel symbols are kept even though most
of them vanish on the equator, since they appear inside second covariant
derivatives.
*/
package background

import (
	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/tensor"
)

const (
	r, th, ph = tensor.IR, tensor.IT, tensor.IP
)

var (
	_ bssn.Background = &FlatSpherical{}
)

// FlatSpherical is the flat metric diag(1, r^2, r^2 sin^2 theta) sampled on
// a set of radii. All quantities are computed once at construction.
type FlatSpherical struct {
	refs []bssn.Reference
}

// NewFlatSpherical creates the reference geometry for the given radii. No
// radius may be zero.
func NewFlatSpherical(radii []float64) *FlatSpherical {
	bg := &FlatSpherical{ refs: make([]bssn.Reference, len(radii)) }
	for x := range radii {
		initReference(&bg.refs[x], radii[x])
	}
	return bg
}

// NumPoints returns the number of radii the background was built on.
func (bg *FlatSpherical) NumPoints() int { return len(bg.refs) }

// ReferenceAt writes the reference geometry at point x into ref.
func (bg *FlatSpherical) ReferenceAt(x int, ref *bssn.Reference) {
	*ref = bg.refs[x]
}

// scaling returns the scaling vector s_i = (1, r, r sin theta) together with
// its first and second derivatives, ds[i][k] = d_k s_i and
// d2s[i][k][l] = d_k d_l s_i, on the equator.
func scaling(rad float64) (s tensor.Vec, ds tensor.Mat, d2s tensor.Rank3) {
	s = tensor.Vec{1, rad, rad}

	ds[th][r] = 1
	ds[ph][r] = 1 // sin theta
	ds[ph][th] = 0 // r cos theta

	d2s[ph][th][th] = -rad // -r sin theta
	d2s[ph][r][th], d2s[ph][th][r] = 0, 0 // cos theta

	return s, ds, d2s
}

func initReference(ref *bssn.Reference, rad float64) {
	*ref = bssn.Reference{}
	s, ds, d2s := scaling(rad)

	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			ref.S[i][j] = s[i] * s[j]
			for k := 0; k < tensor.Dim; k++ {
				ref.DS[i][j][k] = ds[i][k]*s[j] + s[i]*ds[j][k]
				for l := 0; l < tensor.Dim; l++ {
					ref.D2S[i][j][k][l] = d2s[i][k][l]*s[j] +
						ds[i][k]*ds[j][l] + ds[i][l]*ds[j][k] +
						s[i]*d2s[j][k][l]
				}
			}
		}
	}

	r2 := rad * rad
	ref.InvSV = tensor.Vec{1, 1 / rad, 1 / rad}
	ref.DInvSV[th][r] = -1 / r2
	ref.DInvSV[ph][r] = -1 / r2
	ref.DInvSV[ph][th] = 0 // -cos theta / (r sin^2 theta)

	ref.HatGammaLL = tensor.Diag(tensor.Vec{1, r2, r2})

	G := &ref.HatChris
	G[r][th][th] = -rad
	G[r][ph][ph] = -rad // -r sin^2 theta
	G[th][r][th], G[th][th][r] = 1/rad, 1/rad
	G[th][ph][ph] = 0 // -sin theta cos theta
	G[ph][r][ph], G[ph][ph][r] = 1/rad, 1/rad
	G[ph][th][ph], G[ph][ph][th] = 0, 0 // cot theta

	dG := &ref.DHatChris
	dG[r][th][th][r] = -1
	dG[r][ph][ph][r] = -1
	dG[th][r][th][r], dG[th][th][r][r] = -1/r2, -1/r2
	dG[th][ph][ph][th] = 1 // -cos 2 theta
	dG[ph][r][ph][r], dG[ph][ph][r][r] = -1/r2, -1/r2
	dG[ph][th][ph][th], dG[ph][ph][th][th] = -1, -1 // -1 / sin^2 theta
}
