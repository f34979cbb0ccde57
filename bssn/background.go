package bssn

import (
	"github.com/phil-mansfield/gobssn/tensor"
)

// Reference contains the reference ("hat") geometry and the rescaling
// factors at a single grid point. Rescaled tensors are converted to
// coordinate components by multiplying element-wise with S (covariant rank
// 2) or InvSV (contravariant rank 1).
type Reference struct {
	// S_ij = s_i s_j for the scaling vector s_i, and its derivatives,
	// DS[i][j][k] = d_k S_ij and D2S[i][j][k][l] = d_k d_l S_ij.
	S   tensor.Mat
	DS  tensor.Rank3
	D2S tensor.Rank4

	// InvSV[i] = 1/s_i and DInvSV[i][j] = d_j (1/s_i).
	InvSV  tensor.Vec
	DInvSV tensor.Mat

	HatGammaLL tensor.Mat
	// HatChris[i][j][k] = hat Gamma^i_jk, DHatChris[i][j][k][l] its d_l.
	HatChris  tensor.Rank3
	DHatChris tensor.Rank4
}

// Background is the fixed coordinate chart the evolution is performed in.
// It must not change for the lifetime of the grid it was built for and must
// be safe to read from multiple goroutines.
type Background interface {
	NumPoints() int
	// ReferenceAt writes the reference geometry at point x into ref.
	ReferenceAt(x int, ref *Reference)
}
