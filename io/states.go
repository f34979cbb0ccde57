package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// ReadStates reads a table of saved slices. Column 0 of each row is the time
// and the remaining numVars*n columns are the state vector.
func ReadStates(
	file string, numVars, n int,
) (times []float64, states [][]float64, err error) {
	if numVars <= 0 || n <= 0 {
		return nil, nil, fmt.Errorf(
			"Cannot read %d variables on %d points from '%s'.", numVars, n, file,
		)
	}

	colIdxs := make([]int, 1+numVars*n)
	for i := range colIdxs { colIdxs[i] = i }

	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil { return nil, nil, err }
	if len(cols) != len(colIdxs) {
		return nil, nil, fmt.Errorf(
			"'%s' has %d columns, expected %d.", file, len(cols), len(colIdxs),
		)
	}

	rows := len(cols[0])
	if rows == 0 {
		return nil, nil, fmt.Errorf("'%s' contains no slices.", file)
	}

	times = cols[0]
	states = make([][]float64, rows)
	for s := range states {
		states[s] = make([]float64, numVars*n)
		for i := range states[s] {
			states[s][i] = cols[i+1][s]
		}
	}

	return times, states, nil
}
