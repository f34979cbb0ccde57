package grid

// DerivAt writes the first derivative of f into out. The stencils are fourth
// order centred in the interior, second order centred one point in from the
// edges, and second order one-sided at the edges. len(f) must be at least 4.
func DerivAt(f []float64, dx float64, out []float64) []float64 {
	n := len(f)
	if len(out) != n {
		panic("grid: output buffer length does not match input")
	}

	h := 1 / dx
	out[0] = (-3*f[0] + 4*f[1] - f[2]) * h / 2
	out[1] = (f[2] - f[0]) * h / 2
	for x := 2; x < n-2; x++ {
		out[x] = (f[x-2] - 8*f[x-1] + 8*f[x+1] - f[x+2]) * h / 12
	}
	out[n-2] = (f[n-1] - f[n-3]) * h / 2
	out[n-1] = (3*f[n-1] - 4*f[n-2] + f[n-3]) * h / 2

	return out
}

// SecondDerivAt writes the second derivative of f into out using the same
// stencil layout as DerivAt.
func SecondDerivAt(f []float64, dx float64, out []float64) []float64 {
	n := len(f)
	if len(out) != n {
		panic("grid: output buffer length does not match input")
	}

	h2 := 1 / (dx * dx)
	out[0] = (2*f[0] - 5*f[1] + 4*f[2] - f[3]) * h2
	out[1] = (f[2] - 2*f[1] + f[0]) * h2
	for x := 2; x < n-2; x++ {
		out[x] = (-f[x-2] + 16*f[x-1] - 30*f[x] + 16*f[x+1] - f[x+2]) * h2 / 12
	}
	out[n-2] = (f[n-1] - 2*f[n-2] + f[n-3]) * h2
	out[n-1] = (2*f[n-1] - 5*f[n-2] + 4*f[n-3] - f[n-4]) * h2

	return out
}
