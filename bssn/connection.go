package bssn

import (
	"github.com/phil-mansfield/gobssn/tensor"
)

// DBarGammaLL returns hat D_k bar gamma_ij, indexed [i][j][k]. Since the hat
// metric is covariantly constant this is the hat covariant derivative of
// the perturbation h_ij s_ij alone.
func DBarGammaLL(h *tensor.Mat, dh *tensor.Rank3, ref *Reference) tensor.Rank3 {
	var eps tensor.Mat
	var dEps, out tensor.Rank3
	epsDerivs(h, dh, ref, &eps, &dEps)

	G := &ref.HatChris
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for k := 0; k < tensor.Dim; k++ {
				sum := dEps[i][j][k]
				for m := 0; m < tensor.Dim; m++ {
					sum -= G[m][k][i]*eps[m][j] + G[m][k][j]*eps[i][m]
				}
				out[i][j][k] = sum
			}
		}
	}
	return out
}

// Connections computes the difference between the conformal and the hat
// connections,
//
//	Delta^i_jk = bar Gamma^i_jk - hat Gamma^i_jk,
//
// along with its lowered form Delta_ijk = bar gamma_il Delta^l_jk and trace
// Delta^i = bar gamma^jk Delta^i_jk. dg is the output of DBarGammaLL.
func Connections(
	gLL, gUU *tensor.Mat, dg *tensor.Rank3,
) (deltaU tensor.Vec, deltaULL, deltaLLL tensor.Rank3) {
	// Delta^i_jk = 1/2 g^il (D_j g_lk + D_k g_jl - D_l g_jk)
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for k := 0; k < tensor.Dim; k++ {
				sum := 0.0
				for l := 0; l < tensor.Dim; l++ {
					sum += gUU[i][l] * (dg[l][k][j] + dg[j][l][k] - dg[j][k][l])
				}
				deltaULL[i][j][k] = 0.5 * sum
			}
		}
	}

	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for k := 0; k < tensor.Dim; k++ {
				for l := 0; l < tensor.Dim; l++ {
					deltaLLL[i][j][k] += gLL[i][l] * deltaULL[l][j][k]
				}
				deltaU[i] += gUU[j][k] * deltaULL[i][j][k]
			}
		}
	}

	return deltaU, deltaULL, deltaLLL
}

// BarChristoffel returns the Christoffel symbols of the conformal metric,
// bar Gamma^i_jk = hat Gamma^i_jk + Delta^i_jk.
func BarChristoffel(deltaULL *tensor.Rank3, ref *Reference) tensor.Rank3 {
	var chris tensor.Rank3
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for k := 0; k < tensor.Dim; k++ {
				chris[i][j][k] = ref.HatChris[i][j][k] + deltaULL[i][j][k]
			}
		}
	}
	return chris
}

// epsDerivs writes eps_ij = h_ij S_ij and d_k eps_ij.
func epsDerivs(
	h *tensor.Mat, dh *tensor.Rank3, ref *Reference,
	eps *tensor.Mat, dEps *tensor.Rank3,
) {
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			eps[i][j] = h[i][j] * ref.S[i][j]
			for k := 0; k < tensor.Dim; k++ {
				dEps[i][j][k] = dh[i][j][k]*ref.S[i][j] + h[i][j]*ref.DS[i][j][k]
			}
		}
	}
}
