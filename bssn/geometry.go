package bssn

import (
	"github.com/phil-mansfield/gobssn/tensor"
)

// EMTensor holds the matter sources of the constraints: the energy density
// rho and the momentum density S_i (covariant, coordinate basis) measured by
// normal observers.
type EMTensor struct {
	Rho []float64
	SL  []tensor.Vec
}

// NewEMTensor returns a zeroed EMTensor on n points.
func NewEMTensor(n int) *EMTensor {
	return &EMTensor{ Rho: make([]float64, n), SL: make([]tensor.Vec, n) }
}

// Geometry is the full set of derived geometric quantities at a single grid
// point. A Geometry is a scratch buffer: Compute overwrites every field, so
// one value can be reused across points by a single goroutine.
type Geometry struct {
	Ref Reference

	GammaLL, GammaUU tensor.Mat

	DeltaU             tensor.Vec
	DeltaULL, DeltaLLL tensor.Rank3
	ChrisULL           tensor.Rank3

	RicciLL tensor.Mat
	RicciS  float64

	ALL, AUU tensor.Mat
	ASquared float64
	DALL     tensor.Rank3
}

// Compute evaluates every derived quantity at point x. The only failure is
// a degenerate conformal metric, which is returned wrapped in
// ErrDegenerateMetric.
func (g *Geometry) Compute(
	x int, vars *Vars, d1 *D1, d2 *D2, bg Background,
) error {
	bg.ReferenceAt(x, &g.Ref)
	ref := &g.Ref

	g.GammaLL = BarGammaLL(&vars.HLL[x], ref)
	gUU, err := BarGammaUU(&g.GammaLL)
	if err != nil { return err }
	g.GammaUU = gUU

	dg := DBarGammaLL(&vars.HLL[x], &d1.HLL[x], ref)
	g.DeltaU, g.DeltaULL, g.DeltaLLL = Connections(&g.GammaLL, &g.GammaUU, &dg)
	g.ChrisULL = BarChristoffel(&g.DeltaULL, ref)

	g.RicciLL = RicciTensor(&RicciInput{
		H: &vars.HLL[x], DH: &d1.HLL[x], D2H: &d2.HLL[x],
		Lambda: &vars.LambdaU[x], DLambda: &d1.LambdaU[x],
		GammaLL: &g.GammaLL, GammaUU: &g.GammaUU,
		DeltaU: &g.DeltaU, DeltaULL: &g.DeltaULL, DeltaLLL: &g.DeltaLLL,
		Ref: ref,
	})
	g.RicciS = RicciScalar(&g.RicciLL, &g.GammaUU)

	g.ALL = BarALL(&vars.ALL[x], ref)
	g.AUU = BarAUU(&g.ALL, &g.GammaUU)
	g.ASquared = ASquared(&g.ALL, &g.AUU)
	g.DALL = DBarALL(&vars.ALL[x], &d1.ALL[x], ref)

	return nil
}
