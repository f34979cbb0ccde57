package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phil-mansfield/gobssn"
	"github.com/phil-mansfield/gobssn/background"
	"github.com/phil-mansfield/gobssn/bssn"
	"github.com/phil-mansfield/gobssn/grid"
	"github.com/phil-mansfield/gobssn/io"
	"github.com/phil-mansfield/gobssn/matter"
	"github.com/phil-mansfield/gobssn/metrics"
)

var (
	threads int
	verbose bool

	ExampleConfigs = map[string]string{
		"constraints": io.ExampleConstraintsFile,
	}
)

// FileGroup holds the files which stay open for the lifetime of a run.
type FileGroup struct {
	prof   *os.File
	logger *zap.Logger
}

// Close stops profiling and flushes the logger. The error from closing the
// profile file is logged and returned.
func (fg *FileGroup) Close() error {
	var err error
	if fg.prof != nil {
		pprof.StopCPUProfile()
		err = fg.prof.Close()
		if err != nil && fg.logger != nil {
			fg.logger.Error("closing profile", zap.Error(err))
		}
	}

	if fg.logger != nil { fg.logger.Sync() }
	return err
}

var rootCmd = &cobra.Command{
	Use:   "gobssn",
	Short: "Constraint diagnostics for spherically symmetric BSSN evolutions",
	SilenceUsage: true,
}

var constraintsCmd = &cobra.Command{
	Use:   "constraints <config>",
	Short: "Evaluate the Hamiltonian and momentum constraints of saved slices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		con, err := io.ReadConstraintsConfig(args[0])
		if err != nil { return err }
		return constraintsMain(cmd.Context(), con)
	},
}

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config [Constraints]",
	Short: "Print an example configuration file to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "constraints"
		if len(args) == 1 { name = strings.ToLower(args[0]) }

		example, ok := ExampleConfigs[name]
		if !ok {
			return fmt.Errorf(
				"'%s' is not a recognized config type. Accepted arguments "+
					"are 'Constraints'.", args[0],
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), example)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(
		&threads, "threads", 0,
		"Number of slices evaluated at once. Overrides Threads in the config.",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Log every evaluated slice.",
	)
	rootCmd.AddCommand(constraintsCmd, exampleConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil { os.Exit(1) }
}

func constraintsMain(ctx context.Context, con *io.ConstraintsConfig) (err error) {
	runID := uuid.NewString()

	fg, err := setupFileGroup(con, runID)
	if err != nil { return err }
	defer func() {
		if cerr := fg.Close(); err == nil { err = cerr }
	}()
	logger := fg.logger

	m, err := newMatter(con)
	if err != nil { return err }
	numVars := bssn.NumVars + m.NumVars()

	g, err := grid.New(con.RMax, con.Points, con.Ghosts, numVars)
	if err != nil { return err }
	bg := background.NewFlatSpherical(g.R())

	times, states, err := io.ReadStates(con.Input, numVars, con.Points)
	if err != nil { return err }
	logger.Info("read slices",
		zap.String("input", con.Input), zap.Int("slices", len(states)),
		zap.Int("vars", numVars), zap.Int("points", con.Points),
	)

	man := gobssn.NewManager()
	man.Logger = logger
	man.Skip = con.Ghosts
	switch {
	case threads > 0:
		man.Workers = threads
	case con.ValidThreads():
		man.Workers = con.Threads
	}
	if con.ValidMetricsFile() { man.Metrics = metrics.NewRecorder(runID) }

	c, err := man.Evaluate(ctx, states, times, g, bg, m)
	if err != nil { return err }

	err = io.WriteConstraints(
		con.Output, con.PrependName, con.AppendName, g.R(), c,
	)
	if err != nil { return err }

	if man.Metrics != nil {
		if err := man.Metrics.WriteTextfile(con.MetricsFile); err != nil {
			return err
		}
	}

	hamFile, momFile := io.ConstraintFiles(
		con.Output, con.PrependName, con.AppendName,
	)
	logger.Info("wrote constraints",
		zap.String("ham", hamFile), zap.String("mom", momFile),
	)
	return nil
}

func setupFileGroup(con *io.ConstraintsConfig, runID string) (*FileGroup, error) {
	fg := &FileGroup{}

	cfg := zap.NewProductionConfig()
	if verbose { cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel) }
	if con.ValidLogFile() {
		cfg.OutputPaths = []string{con.LogFile}
	}
	logger, err := cfg.Build()
	if err != nil { return nil, err }
	fg.logger = logger.With(zap.String("run", runID))

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil { return nil, err }
		if err := pprof.StartCPUProfile(fg.prof); err != nil {
			fg.prof.Close()
			return nil, err
		}
	}

	return fg, nil
}

func newMatter(con *io.ConstraintsConfig) (gobssn.Matter, error) {
	switch con.Matter {
	case io.Vacuum:
		return matter.Vacuum{}, nil
	case io.ScalarField:
		return &matter.ScalarField{ Mass: con.ScalarMass }, nil
	}
	return nil, fmt.Errorf("Matter model '%s' not recognized.", con.Matter)
}
