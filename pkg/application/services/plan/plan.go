// Package plan wires the builder, solver, and extractor into the single
// synchronous build -> solve -> extract call the rest of the system uses.
package plan

import (
	"fmt"
	"strings"

	"github.com/gtnh-planner/factoryplan/pkg/application/dto"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/extractor"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/solver"
	"github.com/gtnh-planner/factoryplan/pkg/domain/entities"
	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
)

// Run builds the constraint system for config, hands it to s, and extracts
// the solution graph. It is synchronous end to end, with no suspension
// points: the solver call is treated as a non-cancellable, CPU-bound step.
func Run(config entities.FactoryConfig, s solver.Solver, opts planning.BuildOptions) (*dto.SolveResult, error) {
	cs, idx := planning.BuildConstraintSystem(config, opts)

	solution, err := s.Solve(cs)
	if err != nil {
		return nil, fmt.Errorf("solve constraint system: %w", err)
	}

	switch solution.Status {
	case solver.Infeasible:
		return nil, &errs.TargetUnreachable{Item: targetList(config)}
	case solver.Unbounded:
		return nil, &errs.SolverError{Status: solution.Status.String(), Detail: "linear program is unbounded"}
	case solver.Error:
		return nil, &errs.SolverError{Status: solution.Status.String(), Detail: solution.Detail}
	}

	graph, err := extractor.Extract(cs, idx, solution.Values)
	if err != nil {
		return nil, fmt.Errorf("extract solution graph: %w", err)
	}

	return &dto.SolveResult{
		ConstraintSystem: cs,
		VariableIndex:    idx,
		Solution:         solution,
		Graph:            graph,
	}, nil
}

func targetList(config entities.FactoryConfig) string {
	names := make([]string, len(config.Targets))
	for i, t := range config.Targets {
		names[i] = t.Item.Name()
	}
	return strings.Join(names, ", ")
}
