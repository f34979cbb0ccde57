package bssn

import (
	"github.com/phil-mansfield/gobssn/tensor"
)

// RicciInput collects everything needed to evaluate the conformal Ricci
// tensor at a single point.
type RicciInput struct {
	H   *tensor.Mat
	DH  *tensor.Rank3
	D2H *tensor.Rank4

	// Rescaled auxiliary connection lambda^i and d_j lambda^i ([i][j]).
	Lambda  *tensor.Vec
	DLambda *tensor.Mat

	GammaLL, GammaUU *tensor.Mat

	DeltaU             *tensor.Vec
	DeltaULL, DeltaLLL *tensor.Rank3

	Ref *Reference
}

// RicciTensor computes the Ricci tensor of the conformal metric using eq. 12
// of Baumgarte et al. (2013), arXiv:1211.6632:
//
//	R_ij = -1/2 g^kl hD_k hD_l g_ij + g_k(i hD_j) L^k + D^k D_(ij)k
//	       + g^kl (2 D^m_k(i D_j)ml + D^m_ik D_mjl)
//
// where L^k is the evolved auxiliary connection and D the connection
// difference. The hat Riemann tensor vanishes because the reference metric
// is flat.
func RicciTensor(in *RicciInput) tensor.Mat {
	var ricci tensor.Mat
	gLL, gUU := in.GammaLL, in.GammaUU
	dU, dULL, dLLL := in.DeltaU, in.DeltaULL, in.DeltaLLL

	dd := hatDDGamma(in.H, in.DH, in.D2H, in.Ref)
	dLambda := hatDLambda(in.Lambda, in.DLambda, in.Ref)

	for i := 0; i < tensor.Dim; i++ {
		for j := i; j < tensor.Dim; j++ {
			sum := 0.0
			for k := 0; k < tensor.Dim; k++ {
				// g_k(i hD_j) L^k
				sum += 0.5 * (gLL[k][i]*dLambda[k][j] + gLL[k][j]*dLambda[k][i])
				// D^k D_(ij)k
				sum += 0.5 * dU[k] * (dLLL[i][j][k] + dLLL[j][i][k])

				for l := 0; l < tensor.Dim; l++ {
					sum -= 0.5 * gUU[k][l] * dd[i][j][k][l]

					quad := 0.0
					for m := 0; m < tensor.Dim; m++ {
						quad += dULL[m][k][i]*dLLL[j][m][l] +
							dULL[m][k][j]*dLLL[i][m][l] +
							dULL[m][i][k]*dLLL[m][j][l]
					}
					sum += gUU[k][l] * quad
				}
			}
			ricci[i][j] = sum
			ricci[j][i] = sum
		}
	}

	return ricci
}

// RicciScalar returns the trace of the Ricci tensor.
func RicciScalar(ricci, gUU *tensor.Mat) float64 {
	return tensor.Trace(ricci, gUU)
}

// hatDDGamma returns hat D_k hat D_l bar gamma_ij indexed [i][j][k][l].
func hatDDGamma(
	h *tensor.Mat, dh *tensor.Rank3, d2h *tensor.Rank4, ref *Reference,
) *tensor.Rank4 {
	var eps tensor.Mat
	var dEps tensor.Rank3
	epsDerivs(h, dh, ref, &eps, &dEps)

	// d_k d_l eps_ij
	d2Eps := new(tensor.Rank4)
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			s, ds, d2s := ref.S[i][j], &ref.DS[i][j], &ref.D2S[i][j]
			for k := 0; k < tensor.Dim; k++ {
				for l := 0; l < tensor.Dim; l++ {
					d2Eps[i][j][k][l] = d2h[i][j][k][l]*s +
						dh[i][j][l]*ds[k] + dh[i][j][k]*ds[l] +
						h[i][j]*d2s[k][l]
				}
			}
		}
	}

	G, dG := &ref.HatChris, &ref.DHatChris

	// t[i][j][l] = hat D_l eps_ij
	var t tensor.Rank3
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for l := 0; l < tensor.Dim; l++ {
				sum := dEps[i][j][l]
				for m := 0; m < tensor.Dim; m++ {
					sum -= G[m][l][i]*eps[m][j] + G[m][l][j]*eps[i][m]
				}
				t[i][j][l] = sum
			}
		}
	}

	out := new(tensor.Rank4)
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for k := 0; k < tensor.Dim; k++ {
				for l := 0; l < tensor.Dim; l++ {
					// d_k t_ijl
					sum := d2Eps[i][j][l][k]
					for m := 0; m < tensor.Dim; m++ {
						sum -= dG[m][l][i][k]*eps[m][j] + G[m][l][i]*dEps[m][j][k] +
							dG[m][l][j][k]*eps[i][m] + G[m][l][j]*dEps[i][m][k]
					}
					// connection terms for the three lower indices of t
					for m := 0; m < tensor.Dim; m++ {
						sum -= G[m][k][i]*t[m][j][l] + G[m][k][j]*t[i][m][l] +
							G[m][k][l]*t[i][j][m]
					}
					out[i][j][k][l] = sum
				}
			}
		}
	}

	return out
}

// hatDLambda returns hat D_j Lambda^i indexed [i][j], where Lambda^i is the
// coordinate-basis auxiliary connection lambda^i / s_i.
func hatDLambda(lambda *tensor.Vec, dLambda *tensor.Mat, ref *Reference) tensor.Mat {
	var L tensor.Vec
	var dL, out tensor.Mat
	for i := 0; i < tensor.Dim; i++ {
		L[i] = lambda[i] * ref.InvSV[i]
		for j := 0; j < tensor.Dim; j++ {
			dL[i][j] = dLambda[i][j]*ref.InvSV[i] + lambda[i]*ref.DInvSV[i][j]
		}
	}

	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			sum := dL[i][j]
			for m := 0; m < tensor.Dim; m++ {
				sum += ref.HatChris[i][j][m] * L[m]
			}
			out[i][j] = sum
		}
	}
	return out
}
