package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestInvert(t *testing.T) {
	table := []Mat{
		{{1, 3, 5}, {2, 4, 7}, {1, 1, 0}},
		{{2, 0, 0}, {0, 4, 0}, {0, 0, 0.5}},
		{{1.2, 0.1, 0}, {0.1, 0.9, 0.05}, {0, 0.05, 1.1}},
	}

	for i, m := range table {
		inv, err := m.Invert()
		require.NoError(t, err, "%d)", i)

		for j := 0; j < Dim; j++ {
			for k := 0; k < Dim; k++ {
				id, want := 0.0, 0.0
				for l := 0; l < Dim; l++ { id += m[j][l] * inv[l][k] }
				if j == k {
					want = 1
				}
				assert.InDelta(t, want, id, 1e-12, "%d) [%d][%d]", i, j, k)
			}
		}

		var goInv mat.Dense
		require.NoError(t, goInv.Inverse(m.Dense()))
		for j := 0; j < Dim; j++ {
			for k := 0; k < Dim; k++ {
				assert.InDelta(t, goInv.At(j, k), inv[j][k], 1e-12)
			}
		}
	}
}

func TestInvertSingular(t *testing.T) {
	m := Mat{{1, 2, 3}, {2, 4, 6}, {0, 1, 1}}
	_, err := m.Invert()
	assert.True(t, errors.Is(err, ErrSingular), "got %v", err)

	var zero Mat
	_, err = zero.Invert()
	assert.True(t, errors.Is(err, ErrSingular), "got %v", err)
}

func TestDet(t *testing.T) {
	m := Mat{{1, 3, 5}, {2, 4, 7}, {1, 1, 0}}
	assert.InDelta(t, 4.0, m.Det(), 1e-12)

	d := Diag(Vec{1, 4, 9})
	assert.InDelta(t, 36.0, d.Det(), 1e-12)
}

func TestRaise(t *testing.T) {
	g := Mat{{2, 0.3, 0}, {0.3, 1, 0.1}, {0, 0.1, 3}}
	m := Mat{{1, 2, 0}, {2, -1, 0.5}, {0, 0.5, 4}}

	var want Mat
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			for k := 0; k < Dim; k++ {
				for l := 0; l < Dim; l++ {
					want[i][j] += g[i][k] * g[j][l] * m[k][l]
				}
			}
		}
	}

	got := Raise(&m, &g)
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			assert.InDelta(t, want[i][j], got[i][j], 1e-13)
		}
	}
	assert.True(t, got.IsSymmetric(1e-13))
}

func TestTraceAndContract(t *testing.T) {
	gLL := Diag(Vec{1, 4, 4})
	gUU, err := gLL.Invert()
	require.NoError(t, err)

	// A trace-free tensor with respect to gLL.
	a := Mat{{2, 0, 0}, {0, -4, 0}, {0, 0, -4}}
	assert.InDelta(t, 0.0, Trace(&a, &gUU), 1e-14)

	aUU := Raise(&a, &gUU)
	assert.InDelta(t, 4+1+1.0, Contract(&a, &aUU), 1e-14)

	id := Diag(Vec{1, 1, 1})
	assert.InDelta(t, 3.0, Trace(&id, &id), 0)
}

func TestMulVecAndQuad(t *testing.T) {
	m := Mat{{1, 2, 0}, {2, 1, 0}, {0, 0, 3}}
	v := Vec{1, -1, 2}

	assert.Equal(t, Vec{-1, 1, 6}, MulVec(&m, &v))
	assert.InDelta(t, -1*1+1*-1+6*2.0, Quad(&m, &v, &v), 0)

	h := Hadamard(&m, &m)
	assert.Equal(t, Mat{{1, 4, 0}, {4, 1, 0}, {0, 0, 9}}, h)
}
