// Package dto bundles the outputs of a single solve invocation for
// handoff to the CLI/rendering layer, the only consumer outside the
// application services.
package dto

import (
	"github.com/gtnh-planner/factoryplan/pkg/application/services/extractor"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/solver"
)

// SolveResult is everything produced by one end-to-end
// build-solve-extract run, including the intermediate ConstraintSystem and
// raw solver.Solution for verbose diagnostics.
type SolveResult struct {
	ConstraintSystem *planning.ConstraintSystem
	VariableIndex    *planning.VariableIndex
	Solution         solver.Solution
	Graph            *extractor.SolutionGraph
}
