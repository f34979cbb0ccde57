package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	rec := NewRecorder("test-run")

	rec.ObserveSlice(2 * time.Millisecond)
	rec.ObserveSlice(3 * time.Millisecond)
	rec.SetResidual(0.5, 0.25)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.Slices))
	assert.Equal(t, 0.5, testutil.ToFloat64(rec.HamMaxAbs))
	assert.Equal(t, 0.25, testutil.ToFloat64(rec.MomMaxAbs))
	count, err := testutil.GatherAndCount(rec.Registry)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	rec.SetResidual(0.1, 0)
	assert.Equal(t, 0.1, testutil.ToFloat64(rec.HamMaxAbs))
}

func TestRecorderTextfile(t *testing.T) {
	rec := NewRecorder("abc")
	rec.ObserveSlice(time.Millisecond)

	path := filepath.Join(t.TempDir(), "gobssn.prom")
	require.NoError(t, rec.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)

	for _, name := range []string{
		"gobssn_slices_evaluated_total", "gobssn_slice_seconds_bucket",
		"gobssn_ham_max_abs", "gobssn_mom_max_abs",
	} {
		assert.True(t, strings.Contains(text, name), "missing %s", name)
	}
	assert.Contains(t, text, `run="abc"`)
}
