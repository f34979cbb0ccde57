/*package gobssn evaluates the Hamiltonian and momentum constraints of the
BSSN formulation of general relativity on the saved time slices of a
spherically symmetric evolution.

The finite differencing, the background coordinate geometry, and the matter
model are supplied by the caller through the Grid, bssn.Background, and
Matter interfaces. A Manager farms the slices of a batch out to a pool of
workers.
*/
package gobssn

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/metrics"
	"github.com/phil-mansfield/gobssn/tensor"
)

// Grid supplies the radial coordinate, derivatives of state vectors, and
// inner boundary conditions. Implementations must be safe for concurrent
// use.
type Grid interface {
	R() []float64
	NumPoints() int
	NumVars() int
	D1(state []float64) (*bssn.D1, error)
	D2(state []float64) (*bssn.D2, error)
	// FillInnerBoundary overwrites the inner ghost values of a field of
	// length NumPoints().
	FillInnerBoundary(f []float64)
}

// Matter computes the matter sources of the constraints. Implementations
// must be pure and safe for concurrent use.
type Matter interface {
	// NumVars is the number of matter rows following the BSSN block.
	NumVars() int
	EMTensor(
		r []float64, vars *bssn.Vars, d1 *bssn.D1, bg bssn.Background,
	) (*bssn.EMTensor, error)
}

// Manager evaluates batches of slices in parallel.
type Manager struct {
	// Workers is the maximum number of slices evaluated at once.
	Workers int
	// Skip is the number of inner points excluded from logged and
	// recorded norms.
	Skip int

	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

// NewManager returns a Manager with one worker per CPU and no logging.
func NewManager() *Manager {
	return &Manager{ Workers: runtime.NumCPU(), Logger: zap.NewNop() }
}

// workspace holds the intermediates of a single worker.
type workspace struct {
	geom bssn.Geometry
	mom  []float64
}

// Evaluate computes the constraints on every state vector in states. times
// labels the slices and may be nil, in which case slice indices are used.
// The returned rows are in the same order as the input. On error no results
// are returned.
func (man *Manager) Evaluate(
	ctx context.Context, states [][]float64, times []float64,
	g Grid, bg bssn.Background, m Matter,
) (*Constraints, error) {
	if len(states) == 0 { return nil, ErrNoSlices }
	if times == nil {
		times = make([]float64, len(states))
		for i := range times { times[i] = float64(i) }
	} else if len(times) != len(states) {
		return nil, fmt.Errorf(
			"%w: %d times for %d slices", ErrShapeMismatch, len(times), len(states),
		)
	}
	if err := checkCollaborators(g, bg, m); err != nil { return nil, err }

	log := man.logger()
	n := g.NumPoints()
	workers := man.Workers
	if workers <= 0 { workers = 1 }

	c := &Constraints{
		Times: append([]float64(nil), times...),
		Ham:   make([][]float64, len(states)),
		Mom:   make([][]tensor.Vec, len(states)),
	}

	log.Info("evaluating constraints",
		zap.Int("slices", len(states)), zap.Int("points", n),
		zap.Int("workers", workers),
	)

	spaces := make(chan *workspace, workers)
	for i := 0; i < workers; i++ {
		spaces <- &workspace{ mom: make([]float64, n) }
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for s := range states {
		if egCtx.Err() != nil { break }
		s := s
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil { return err }

			w := <-spaces
			defer func() { spaces <- w }()

			start := time.Now()
			ham, mom, err := w.evaluate(states[s], g, bg, m)
			if err != nil {
				if se, ok := err.(*SliceError); ok {
					se.Slice, se.Time = s, times[s]
					return se
				}
				return &SliceError{ Slice: s, Point: -1, Time: times[s], Err: err }
			}
			c.Ham[s], c.Mom[s] = ham, mom

			if man.Metrics != nil { man.Metrics.ObserveSlice(time.Since(start)) }
			if ce := log.Check(zap.DebugLevel, "evaluated slice"); ce != nil {
				norm := sliceNorm(ham, mom, man.Skip)
				ce.Write(
					zap.Int("slice", s), zap.Float64("t", times[s]),
					zap.Float64("ham_l2", norm.HamL2),
					zap.Float64("mom_l2", norm.MomL2),
				)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil { return nil, err }
	if err := ctx.Err(); err != nil { return nil, err }

	hamMax, momMax := c.MaxAbs(man.Skip)
	if man.Metrics != nil { man.Metrics.SetResidual(hamMax, momMax) }
	log.Info("evaluated constraints",
		zap.Int("slices", len(states)),
		zap.Float64("ham_max_abs", hamMax),
		zap.Float64("mom_max_abs", momMax),
	)

	return c, nil
}

// EvaluateState computes the constraints of a single state vector.
func (man *Manager) EvaluateState(
	ctx context.Context, state []float64,
	g Grid, bg bssn.Background, m Matter,
) (ham []float64, mom []tensor.Vec, err error) {
	c, err := man.Evaluate(ctx, [][]float64{state}, nil, g, bg, m)
	if err != nil { return nil, nil, err }
	return c.Ham[0], c.Mom[0], nil
}

func (man *Manager) logger() *zap.Logger {
	if man.Logger == nil { return zap.NewNop() }
	return man.Logger
}

func checkCollaborators(g Grid, bg bssn.Background, m Matter) error {
	n := g.NumPoints()
	if len(g.R()) != n {
		return fmt.Errorf(
			"%w: grid has %d points but %d radii", ErrContract, n, len(g.R()),
		)
	} else if bg.NumPoints() != n {
		return fmt.Errorf(
			"%w: grid has %d points but background has %d",
			ErrContract, n, bg.NumPoints(),
		)
	} else if need := bssn.NumVars + m.NumVars(); g.NumVars() < need {
		return fmt.Errorf(
			"%w: grid has %d variables, matter model needs %d",
			ErrShapeMismatch, g.NumVars(), need,
		)
	}
	return nil
}

// evaluate computes the constraints on a single slice.
func (w *workspace) evaluate(
	state []float64, g Grid, bg bssn.Background, m Matter,
) ([]float64, []tensor.Vec, error) {
	n, r := g.NumPoints(), g.R()

	vars, err := bssn.NewVars(state, g.NumVars(), n)
	if err != nil { return nil, nil, err }
	d1, err := g.D1(state)
	if err != nil { return nil, nil, err }
	d2, err := g.D2(state)
	if err != nil { return nil, nil, err }
	if err := checkDerivs(d1, d2, n); err != nil { return nil, nil, err }

	em, err := m.EMTensor(r, vars, d1, bg)
	var pe *bssn.PointError
	if errors.As(err, &pe) {
		return nil, nil, &SliceError{ Point: pe.Point, Err: pe.Err }
	} else if err != nil {
		return nil, nil, err
	}
	if len(em.Rho) != n || len(em.SL) != n {
		return nil, nil, fmt.Errorf(
			"%w: matter sources have %d/%d points, expected %d",
			ErrContract, len(em.Rho), len(em.SL), n,
		)
	}

	ham := make([]float64, n)
	mom := make([]tensor.Vec, n)
	for x := 0; x < n; x++ {
		if err := w.geom.Compute(x, vars, d1, d2, bg); err != nil {
			return nil, nil, &SliceError{ Point: x, Err: err }
		}
		ham[x] = Hamiltonian(x, vars, d1, d2, &w.geom, em.Rho[x])
		mom[x] = Momentum(x, vars, d1, &w.geom, &em.SL[x])
	}

	g.FillInnerBoundary(ham)
	for _, i := range []int{tensor.IR, tensor.IT, tensor.IP} {
		for x := range mom { w.mom[x] = mom[x][i] }
		g.FillInnerBoundary(w.mom)
		for x := range mom { mom[x][i] = w.mom[x] }
	}

	return ham, mom, nil
}

func checkDerivs(d1 *bssn.D1, d2 *bssn.D2, n int) error {
	if d1 == nil || d2 == nil {
		return fmt.Errorf("%w: grid returned nil derivatives", ErrContract)
	}
	if d1.N != n || len(d1.HLL) != n || len(d1.Phi) != n ||
		d2.N != n || len(d2.HLL) != n || len(d2.Phi) != n {
		return fmt.Errorf(
			"%w: derivatives have %d/%d points, expected %d",
			ErrContract, d1.N, d2.N, n,
		)
	}
	return nil
}
