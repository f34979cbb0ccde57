package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleConstraintsFile = `[Constraints]

#######################
# Required Parameters #
#######################

# Text table of saved slices. Each row is one slice: the time followed by the
# state vector, variable-major (all points of phi, then all points of h_rr,
# and so on). Lines starting with # are ignored.
Input = path/to/states.txt
# Directory which the ham.txt and mom.txt tables will be written to.
Output = path/to/output/dir

# Outer radius of the grid and the number of points on it. Points includes
# the inner ghost points.
RMax = 16
Points = 134

#######################
# Optional Parameters #
#######################

# Number of ghost points mirrored across r = 0. Default is 3.
# Ghosts = 3

# Matter model. Must be one of [ Vacuum | ScalarField ]. Default is Vacuum.
# ScalarField expects two extra rows after the lapse: the field and its
# normal time derivative.
# Matter = ScalarField
# ScalarMass = 1.0

# Number of slices evaluated in parallel. Default is the number of CPUs.
# Threads = 4

# Will result in files named pre_ham_app.txt and pre_mom_app.txt:
# PrependName = pre_
# AppendName  = _app

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out

# Prometheus metrics in the node exporter textfile format.
# MetricsFile = gobssn.prom`
)

// Supported matter models.
const (
	Vacuum      = "Vacuum"
	ScalarField = "ScalarField"
)

type SharedConfig struct {
	// Required
	Input, Output string
	// Optional
	LogFile, ProfileFile, MetricsFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *SharedConfig) ValidMetricsFile() bool {
	return con.MetricsFile != ""
}

type ConstraintsConfig struct {
	SharedConfig

	// Required
	RMax   float64
	Points int

	// Optional
	Ghosts     int
	Matter     string
	ScalarMass float64
	Threads    int
	AppendName, PrependName string
}

type ConstraintsWrapper struct {
	Constraints ConstraintsConfig
}

func DefaultConstraintsWrapper() *ConstraintsWrapper {
	con := ConstraintsConfig{}
	con.Ghosts = 3
	con.Matter = Vacuum
	return &ConstraintsWrapper{con}
}

func (con *ConstraintsConfig) ValidRMax() bool {
	return con.RMax > 0
}
func (con *ConstraintsConfig) ValidPoints() bool {
	return con.Points > 2*con.Ghosts+4
}
func (con *ConstraintsConfig) ValidGhosts() bool {
	return con.Ghosts >= 1
}
func (con *ConstraintsConfig) ValidMatter() bool {
	return strings.EqualFold(con.Matter, Vacuum) ||
		strings.EqualFold(con.Matter, ScalarField)
}
func (con *ConstraintsConfig) ValidScalarMass() bool {
	return con.ScalarMass >= 0
}
func (con *ConstraintsConfig) ValidThreads() bool {
	return con.Threads > 0
}

// CheckInit checks that every required variable has been set and that every
// set variable is valid. Matter is normalized to its canonical spelling.
func (con *ConstraintsConfig) CheckInit() error {
	switch {
	case !con.ValidInput():
		return fmt.Errorf("Need to specify an input file.")
	case !con.ValidOutput():
		return fmt.Errorf("Need to specify an output directory.")
	case !con.ValidRMax():
		return fmt.Errorf("RMax must be positive, but is %g.", con.RMax)
	case !con.ValidGhosts():
		return fmt.Errorf("Ghosts must be at least 1, but is %d.", con.Ghosts)
	case !con.ValidPoints():
		return fmt.Errorf(
			"Points must be larger than %d for %d ghosts, but is %d.",
			2*con.Ghosts+4, con.Ghosts, con.Points,
		)
	case !con.ValidMatter():
		return fmt.Errorf(
			"Matter must be one of [%s | %s]. '%s' is not recognized.",
			Vacuum, ScalarField, con.Matter,
		)
	case !con.ValidScalarMass():
		return fmt.Errorf(
			"ScalarMass cannot be negative, but is %g.", con.ScalarMass,
		)
	case con.Threads != 0 && !con.ValidThreads():
		return fmt.Errorf("Threads must be positive, but is %d.", con.Threads)
	}

	if strings.EqualFold(con.Matter, ScalarField) {
		con.Matter = ScalarField
	} else {
		con.Matter = Vacuum
	}
	return nil
}

// ReadConstraintsConfig reads and validates a [Constraints] config file.
func ReadConstraintsConfig(fname string) (*ConstraintsConfig, error) {
	wrap := DefaultConstraintsWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil { return nil, err }
	if err := wrap.Constraints.CheckInit(); err != nil { return nil, err }
	return &wrap.Constraints, nil
}
