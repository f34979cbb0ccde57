package gobssn

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/tensor"
)

// Constraints holds the constraint residuals of a batch of slices. Row s of
// Ham and Mom corresponds to the s-th input slice.
type Constraints struct {
	Times []float64
	Ham   [][]float64
	Mom   [][]tensor.Vec
}

// Norm summarizes the constraint violation on a single slice.
type Norm struct {
	HamL2, HamMax float64
	MomL2, MomMax float64
}

// Norms returns the L2 norm and the largest absolute value of Ham and of
// |Mom| on every slice, ignoring the first skip points (usually the inner
// ghosts).
func (c *Constraints) Norms(skip int) []Norm {
	norms := make([]Norm, len(c.Ham))
	for s := range norms {
		norms[s] = sliceNorm(c.Ham[s], c.Mom[s], skip)
	}
	return norms
}

// MaxAbs returns the largest values of |Ham| and |Mom| over the whole batch.
func (c *Constraints) MaxAbs(skip int) (hamMax, momMax float64) {
	for _, n := range c.Norms(skip) {
		hamMax = math.Max(hamMax, n.HamMax)
		momMax = math.Max(momMax, n.MomMax)
	}
	return hamMax, momMax
}

func sliceNorm(ham []float64, mom []tensor.Vec, skip int) Norm {
	if skip < 0 { skip = 0 }
	if skip >= len(ham) { return Norm{} }

	mag := make([]float64, len(mom)-skip)
	for x := range mag {
		m := mom[x+skip]
		mag[x] = floats.Norm(m[:], 2)
	}

	h := ham[skip:]
	return Norm{
		HamL2: floats.Norm(h, 2), HamMax: floats.Norm(h, math.Inf(1)),
		MomL2: floats.Norm(mag, 2), MomMax: floats.Norm(mag, math.Inf(1)),
	}
}

// Hamiltonian returns the Hamiltonian constraint at point x,
//
//	H = 2/3 K^2 - A_ij A^ij + e^{-4 phi} (bar R - 8 bar D^i phi bar D_i phi
//	    - 8 bar D^i bar D_i phi) - 16 pi rho.
func Hamiltonian(
	x int, vars *bssn.Vars, d1 *bssn.D1, d2 *bssn.D2,
	geom *bssn.Geometry, rho float64,
) float64 {
	gUU := &geom.GammaUU
	dphi, d2phi := &d1.Phi[x], &d2.Phi[x]

	lap := 0.0
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			conn := 0.0
			for k := 0; k < tensor.Dim; k++ {
				conn += geom.ChrisULL[k][i][j] * dphi[k]
			}
			lap += gUU[i][j] * (d2phi[i][j] - conn)
		}
	}

	grad := tensor.Quad(gUU, dphi, dphi)
	K := vars.K[x]

	return bssn.TwoThirds*K*K - geom.ASquared +
		math.Exp(-4*vars.Phi[x])*(geom.RicciS-8*grad-8*lap) -
		2*bssn.EightPiG*rho
}

// Momentum returns the contravariant momentum constraint at point x,
//
//	M^i = e^{-4 phi} (bar D_j A^ij + 6 A^ij d_j phi - 2/3 bar gamma^ij d_j K
//	      - 8 pi bar gamma^ij S_j),
//
// where the divergence is expanded as g^il g^jm (d_j A_lm
// - bar Gamma^n_jl A_nm - bar Gamma^n_jm A_ln).
func Momentum(
	x int, vars *bssn.Vars, d1 *bssn.D1, geom *bssn.Geometry, sL *tensor.Vec,
) tensor.Vec {
	gUU, aLL, aUU := &geom.GammaUU, &geom.ALL, &geom.AUU
	chris, dA := &geom.ChrisULL, &geom.DALL
	dphi, dK := &d1.Phi[x], &d1.K[x]

	// div_l = g^jm (d_j A_lm - ...), raised with g^il below.
	var div tensor.Vec
	for l := 0; l < tensor.Dim; l++ {
		sum := 0.0
		for j := 0; j < tensor.Dim; j++ {
			for m := 0; m < tensor.Dim; m++ {
				term := dA[l][m][j]
				for n := 0; n < tensor.Dim; n++ {
					term -= chris[n][j][l]*aLL[n][m] + chris[n][j][m]*aLL[l][n]
				}
				sum += gUU[j][m] * term
			}
		}
		div[l] = sum
	}

	divU := tensor.MulVec(gUU, &div)
	aDphi := tensor.MulVec(aUU, dphi)
	gdK := tensor.MulVec(gUU, dK)
	gS := tensor.MulVec(gUU, sL)

	conf := math.Exp(-4 * vars.Phi[x])
	var mom tensor.Vec
	for i := 0; i < tensor.Dim; i++ {
		mom[i] = conf * (divU[i] + 6*aDphi[i] -
			bssn.TwoThirds*gdK[i] - bssn.EightPiG*gS[i])
	}
	return mom
}
