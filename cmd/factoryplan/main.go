package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
	"github.com/gtnh-planner/factoryplan/pkg/interfaces/cli/commands"
)

func main() {
	var (
		verbose = flag.Bool("v", false, "Enable verbose output")
		format  = flag.String("format", "text", "Output format: text, json")
	)
	flag.BoolVar(verbose, "verbose", false, "Enable verbose output (same as -v)")
	flag.Usage = showHelp

	flag.Parse()

	if flag.NArg() != 1 {
		showHelp()
		os.Exit(2)
	}

	err := commands.Solve(commands.SolveOptions{
		ConfigPath: flag.Arg(0),
		Verbose:    *verbose,
		Format:     *format,
	})
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var unreachable *errs.TargetUnreachable
	var solverErr *errs.SolverError
	switch {
	case errors.As(err, &unreachable):
		os.Exit(3)
	case errors.As(err, &solverErr):
		os.Exit(4)
	default:
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Fprintf(os.Stderr, "factoryplan - compute a minimum-cost production plan for a factory config\n\n")
	fmt.Fprintf(os.Stderr, "Usage: factoryplan [flags] factory_config.json\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
