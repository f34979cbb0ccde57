/*tensor contains dense fixed-rank tensors over three spatial dimensions and
the handful of contractions needed to do BSSN algebra on them.

Everything here is a plain array, so tensors are values: assigning one copies
it, and nothing needs to be allocated inside hot loops. Index order always
follows the way the component would be written on paper, with derivative
indices last, e.g. Rank3[i][j][k] for d_k h_ij.
*/
package tensor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dim is the number of spatial dimensions.
const Dim = 3

// Component indices of spherical coordinates.
const (
	IR = iota
	IT
	IP
)

// ErrSingular is returned when a matrix cannot be inverted to working
// precision.
var ErrSingular = errors.New("tensor: singular matrix")

type Vec [Dim]float64
type Mat [Dim][Dim]float64
type Rank3 [Dim][Dim][Dim]float64
type Rank4 [Dim][Dim][Dim][Dim]float64

// Diag returns a diagonal matrix with the given elements.
func Diag(d Vec) Mat {
	var m Mat
	for i := 0; i < Dim; i++ {
		m[i][i] = d[i]
	}
	return m
}

// Dense copies m into a gonum matrix.
func (m *Mat) Dense() *mat.Dense {
	vals := make([]float64, Dim*Dim)
	for i := 0; i < Dim; i++ {
		copy(vals[i*Dim:(i+1)*Dim], m[i][:])
	}
	return mat.NewDense(Dim, Dim, vals)
}

// Det returns the determinant of m.
func (m *Mat) Det() float64 {
	return mat.Det(m.Dense())
}

// Invert returns the inverse of m. ErrSingular is returned (wrapped) if m is
// singular or so badly conditioned that the inverse is meaningless.
func (m *Mat) Invert() (Mat, error) {
	var out Mat
	inv := mat.NewDense(Dim, Dim, nil)
	if err := inv.Inverse(m.Dense()); err != nil {
		return out, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			out[i][j] = inv.At(i, j)
		}
	}
	return out, nil
}

// Trace returns the trace of m taken with respect to the inverse metric gUU,
// gUU^ij m_ij.
func Trace(m, gUU *Mat) float64 {
	sum := 0.0
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			sum += gUU[i][j] * m[i][j]
		}
	}
	return sum
}

// Raise raises both indices of a rank-2 covariant tensor, g^ik g^jl m_kl.
// The same function lowers both indices of a contravariant tensor when
// handed the covariant metric.
func Raise(m, g *Mat) Mat {
	// Two passes of three-term sums instead of one pass of nine.
	var tmp, out Mat
	for i := 0; i < Dim; i++ {
		for l := 0; l < Dim; l++ {
			for k := 0; k < Dim; k++ {
				tmp[i][l] += g[i][k] * m[k][l]
			}
		}
	}
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			for l := 0; l < Dim; l++ {
				out[i][j] += tmp[i][l] * g[j][l]
			}
		}
	}
	return out
}

// Contract returns the full double contraction m1_ij m2^ij.
func Contract(m1, m2 *Mat) float64 {
	sum := 0.0
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			sum += m1[i][j] * m2[i][j]
		}
	}
	return sum
}

// MulVec returns m^ij v_j.
func MulVec(m *Mat, v *Vec) Vec {
	var out Vec
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			out[i] += m[i][j] * v[j]
		}
	}
	return out
}

// Quad returns the quadratic form m^ij u_i v_j.
func Quad(m *Mat, u, v *Vec) float64 {
	sum := 0.0
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			sum += m[i][j] * u[i] * v[j]
		}
	}
	return sum
}

// Hadamard returns the element-wise product a_ij b_ij (no sum). This is how
// rescaled tensor components are turned back into coordinate components.
func Hadamard(a, b *Mat) Mat {
	var out Mat
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			out[i][j] = a[i][j] * b[i][j]
		}
	}
	return out
}

// IsSymmetric returns true if m equals its transpose to within eps.
func (m *Mat) IsSymmetric(eps float64) bool {
	for i := 0; i < Dim; i++ {
		for j := i + 1; j < Dim; j++ {
			d := m[i][j] - m[j][i]
			if d > eps || d < -eps {
				return false
			}
		}
	}
	return true
}
