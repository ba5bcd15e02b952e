// Package commands wires the config loader, planner, and renderer into
// the CLI's single subcommand: solve a factory config and print the
// resulting production plan.
package commands

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gtnh-planner/factoryplan/pkg/application/services/plan"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/solver"
	"github.com/gtnh-planner/factoryplan/pkg/infrastructure/config"
	"github.com/gtnh-planner/factoryplan/pkg/interfaces/cli/output"
)

// verboseLogger prefixes every trace line with a per-run correlation ID so
// a verbose run can be grepped out of interleaved log output; there is no
// persistence layer, so the ID only exists for the lifetime of one run.
type verboseLogger struct {
	runID string
}

func (l verboseLogger) Logf(format string, args ...any) {
	fmt.Printf("[%s] "+format+"\n", append([]any{l.runID}, args...)...)
}

// SolveOptions are the CLI-facing knobs for one Solve invocation.
type SolveOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string
}

// Solve loads opts.ConfigPath, builds and solves the production-planning
// LP, and renders the result. It returns errors for the caller to classify
// into an exit code (config-load errors wrapped with %w, planning errors
// as-is); nothing here is retried.
func Solve(opts SolveOptions) error {
	var logger config.Logger
	runID := uuid.NewString()
	if opts.Verbose {
		logger = verboseLogger{runID: runID}
		fmt.Printf("[%s] run started for %s\n", runID, opts.ConfigPath)
	}

	factoryConfig, _, err := config.Load(opts.ConfigPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	result, err := plan.Run(factoryConfig, solver.NewSimplex(), planning.DefaultBuildOptions())
	if err != nil {
		return err
	}

	return output.Generate(result, output.Config{Format: opts.Format, Verbose: opts.Verbose})
}
