/*package metrics exports Prometheus metrics describing a constraint
evaluation run. Each Recorder owns its own registry so that several runs (or
tests) can coexist in one process.
*/
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gobssn"

// Recorder collects per-slice metrics.
type Recorder struct {
	Registry *prometheus.Registry

	Slices       prometheus.Counter
	SliceSeconds prometheus.Histogram
	HamMaxAbs    prometheus.Gauge
	MomMaxAbs    prometheus.Gauge
}

// NewRecorder creates a Recorder whose metrics all carry the label
// run=runID.
func NewRecorder(runID string) *Recorder {
	labels := prometheus.Labels{"run": runID}
	rec := &Recorder{
		Registry: prometheus.NewRegistry(),
		Slices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "slices_evaluated_total",
			Help:        "Number of time slices whose constraints were evaluated.",
			ConstLabels: labels,
		}),
		SliceSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "slice_seconds",
			Help:        "Wall-clock time spent evaluating a single slice.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		HamMaxAbs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "ham_max_abs",
			Help:        "Largest Hamiltonian constraint violation in the last batch.",
			ConstLabels: labels,
		}),
		MomMaxAbs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "mom_max_abs",
			Help:        "Largest momentum constraint violation in the last batch.",
			ConstLabels: labels,
		}),
	}

	rec.Registry.MustRegister(
		rec.Slices, rec.SliceSeconds, rec.HamMaxAbs, rec.MomMaxAbs,
	)
	return rec
}

// ObserveSlice records one evaluated slice. Safe for concurrent use.
func (rec *Recorder) ObserveSlice(elapsed time.Duration) {
	rec.Slices.Inc()
	rec.SliceSeconds.Observe(elapsed.Seconds())
}

// SetResidual records the largest constraint violations of a batch.
func (rec *Recorder) SetResidual(hamMax, momMax float64) {
	rec.HamMaxAbs.Set(hamMax)
	rec.MomMaxAbs.Set(momMax)
}

// WriteTextfile writes every metric in the text exposition format to path,
// in the form expected by the node exporter's textfile collector.
func (rec *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, rec.Registry)
}
