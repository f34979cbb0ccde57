package bssn

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/gobssn/tensor"
)

// Layout of the BSSN block of the state vector. Matter variables, if any,
// follow directly after IdxLapse.
const (
	IdxPhi = iota
	IdxHRR
	IdxHTT
	IdxHPP
	IdxK
	IdxARR
	IdxATT
	IdxAPP
	IdxLambdaR
	IdxShiftR
	IdxBR
	IdxLapse

	// NumVars is the number of BSSN variables in the state vector.
	NumVars
)

var (
	// ErrShapeMismatch is returned when a state vector or a field does not
	// have the length implied by the grid.
	ErrShapeMismatch = errors.New("bssn: shape mismatch")
)

// Vars holds the unpacked BSSN variables on every grid point of one slice.
// h and a are stored in their rescaled form; multiply by the background
// scaling matrix to get coordinate components.
type Vars struct {
	N int

	Phi, K, Lapse []float64
	HLL, ALL      []tensor.Mat
	LambdaU       []tensor.Vec
	ShiftU, BU    []tensor.Vec

	// Matter holds the rows of the state vector after the BSSN block.
	Matter [][]float64
}

// D1 holds first derivatives of the BSSN variables. The derivative index is
// always the last one, so HLL[x][i][j][k] is d_k h_ij at point x.
type D1 struct {
	N int

	Phi, K, Lapse   []tensor.Vec
	HLL, ALL        []tensor.Rank3
	LambdaU, ShiftU []tensor.Mat

	Matter [][]tensor.Vec
}

// D2 holds the second derivatives which enter the constraints.
type D2 struct {
	N int

	Phi []tensor.Mat
	HLL []tensor.Rank4
}

// Rows splits a flat, variable-major state vector into numVars rows of length
// n. The rows share memory with state.
func Rows(state []float64, numVars, n int) ([][]float64, error) {
	if n <= 0 || numVars <= 0 {
		return nil, fmt.Errorf(
			"%w: %d variables on %d points", ErrShapeMismatch, numVars, n,
		)
	} else if len(state) != numVars*n {
		return nil, fmt.Errorf(
			"%w: state has length %d, expected %d variables * %d points = %d",
			ErrShapeMismatch, len(state), numVars, n, numVars*n,
		)
	}

	rows := make([][]float64, numVars)
	for v := range rows {
		rows[v] = state[v*n : (v+1)*n]
	}
	return rows, nil
}

// NewVars unpacks a state vector into named BSSN fields.
func NewVars(state []float64, numVars, n int) (*Vars, error) {
	if numVars < NumVars {
		return nil, fmt.Errorf(
			"%w: %d variables cannot hold the %d BSSN variables",
			ErrShapeMismatch, numVars, NumVars,
		)
	}
	rows, err := Rows(state, numVars, n)
	if err != nil { return nil, err }

	vars := &Vars{
		N:       n,
		Phi:     make([]float64, n),
		K:       make([]float64, n),
		Lapse:   make([]float64, n),
		HLL:     make([]tensor.Mat, n),
		ALL:     make([]tensor.Mat, n),
		LambdaU: make([]tensor.Vec, n),
		ShiftU:  make([]tensor.Vec, n),
		BU:      make([]tensor.Vec, n),
		Matter:  make([][]float64, numVars-NumVars),
	}

	copy(vars.Phi, rows[IdxPhi])
	copy(vars.K, rows[IdxK])
	copy(vars.Lapse, rows[IdxLapse])
	for x := 0; x < n; x++ {
		vars.HLL[x] = diagAt(rows, IdxHRR, x)
		vars.ALL[x] = diagAt(rows, IdxARR, x)
		vars.LambdaU[x][tensor.IR] = rows[IdxLambdaR][x]
		vars.ShiftU[x][tensor.IR] = rows[IdxShiftR][x]
		vars.BU[x][tensor.IR] = rows[IdxBR][x]
	}

	for m := range vars.Matter {
		vars.Matter[m] = make([]float64, n)
		copy(vars.Matter[m], rows[NumVars+m])
	}

	return vars, nil
}

// NewD1 builds the first derivative bundle from the radial derivatives of
// every row of the state vector. In spherical symmetry the rescaled
// variables depend on r alone, so only the radial slot is filled.
func NewD1(dRows [][]float64, n int) (*D1, error) {
	if err := checkRows(dRows, n); err != nil { return nil, err }

	d1 := &D1{
		N:       n,
		Phi:     make([]tensor.Vec, n),
		K:       make([]tensor.Vec, n),
		Lapse:   make([]tensor.Vec, n),
		HLL:     make([]tensor.Rank3, n),
		ALL:     make([]tensor.Rank3, n),
		LambdaU: make([]tensor.Mat, n),
		ShiftU:  make([]tensor.Mat, n),
		Matter:  make([][]tensor.Vec, len(dRows)-NumVars),
	}

	for x := 0; x < n; x++ {
		d1.Phi[x][tensor.IR] = dRows[IdxPhi][x]
		d1.K[x][tensor.IR] = dRows[IdxK][x]
		d1.Lapse[x][tensor.IR] = dRows[IdxLapse][x]
		for i := 0; i < tensor.Dim; i++ {
			d1.HLL[x][i][i][tensor.IR] = dRows[IdxHRR+i][x]
			d1.ALL[x][i][i][tensor.IR] = dRows[IdxARR+i][x]
		}
		d1.LambdaU[x][tensor.IR][tensor.IR] = dRows[IdxLambdaR][x]
		d1.ShiftU[x][tensor.IR][tensor.IR] = dRows[IdxShiftR][x]
	}

	for m := range d1.Matter {
		d1.Matter[m] = make([]tensor.Vec, n)
		for x := 0; x < n; x++ {
			d1.Matter[m][x][tensor.IR] = dRows[NumVars+m][x]
		}
	}

	return d1, nil
}

// NewD2 builds the second derivative bundle from the second radial
// derivatives of every row of the state vector.
func NewD2(d2Rows [][]float64, n int) (*D2, error) {
	if err := checkRows(d2Rows, n); err != nil { return nil, err }

	d2 := &D2{
		N:   n,
		Phi: make([]tensor.Mat, n),
		HLL: make([]tensor.Rank4, n),
	}

	r := tensor.IR
	for x := 0; x < n; x++ {
		d2.Phi[x][r][r] = d2Rows[IdxPhi][x]
		for i := 0; i < tensor.Dim; i++ {
			d2.HLL[x][i][i][r][r] = d2Rows[IdxHRR+i][x]
		}
	}

	return d2, nil
}

func diagAt(rows [][]float64, start, x int) tensor.Mat {
	var m tensor.Mat
	for i := 0; i < tensor.Dim; i++ {
		m[i][i] = rows[start+i][x]
	}
	return m
}

func checkRows(rows [][]float64, n int) error {
	if len(rows) < NumVars {
		return fmt.Errorf(
			"%w: %d derivative rows, need at least %d",
			ErrShapeMismatch, len(rows), NumVars,
		)
	}
	for v := range rows {
		if len(rows[v]) != n {
			return fmt.Errorf(
				"%w: derivative row %d has length %d, expected %d",
				ErrShapeMismatch, v, len(rows[v]), n,
			)
		}
	}
	return nil
}
