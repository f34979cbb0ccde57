package bssn

import (
	"github.com/phil-mansfield/gobssn/tensor"
)

// BarALL returns the coordinate components of the conformal trace-free
// extrinsic curvature, A_ij = a_ij s_ij.
func BarALL(a *tensor.Mat, ref *Reference) tensor.Mat {
	return tensor.Hadamard(a, &ref.S)
}

// BarAUU raises both indices of A_ij with the conformal metric.
func BarAUU(aLL, gUU *tensor.Mat) tensor.Mat {
	return tensor.Raise(aLL, gUU)
}

// ASquared returns A_ij A^ij.
func ASquared(aLL, aUU *tensor.Mat) float64 {
	return tensor.Contract(aLL, aUU)
}

// DBarALL returns d_k A_ij indexed [i][j][k] from the rescaled a_ij and its
// derivatives.
func DBarALL(a *tensor.Mat, da *tensor.Rank3, ref *Reference) tensor.Rank3 {
	var out tensor.Rank3
	for i := 0; i < tensor.Dim; i++ {
		for j := 0; j < tensor.Dim; j++ {
			for k := 0; k < tensor.Dim; k++ {
				out[i][j][k] = ref.S[i][j]*da[i][j][k] + a[i][j]*ref.DS[i][j][k]
			}
		}
	}
	return out
}
