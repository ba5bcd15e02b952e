// Package solver hands a planning.ConstraintSystem to an LP solver and
// returns the optimal variable assignment. The driver here is a reference
// implementation (a dense Big-M simplex): production deployments
// are expected to swap in a call to a dedicated solver library behind the
// same Solver interface without touching the builder or the extractor.
package solver

import "github.com/gtnh-planner/factoryplan/pkg/application/services/planning"

// Status mirrors the external solver contract: an LP either has an optimal
// finite solution, is infeasible, is unbounded, or the solver itself failed.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	Error
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return "Error"
	}
}

// Solution is the outcome of a solve attempt. Values is populated only
// when Status is Optimal.
type Solution struct {
	Status Status
	Values map[planning.VarRef]float64
	Detail string
}

// Solver is the contract the LP builder and the graph extractor are
// written against. The driver does not retry: infeasibility and unbounded
// results are returned to the caller verbatim.
type Solver interface {
	Solve(cs *planning.ConstraintSystem) (Solution, error)
}
