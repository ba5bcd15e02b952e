// Package errs holds the error taxonomy surfaced by recipe normalization,
// LP construction, and solving. Every type here implements the error
// interface through a pointer receiver; callers branch on kind with errors.As,
// following the same `fmt.Errorf("...: %w", err)` wrapping the rest of the
// module uses to add context as an error crosses a layer boundary.
package errs

import "fmt"

// ConfigParse wraps a failure to parse or validate a factory config file.
type ConfigParse struct {
	Path string
	Err  error
}

func (e *ConfigParse) Error() string {
	return fmt.Sprintf("parse config %q: %v", e.Path, e.Err)
}

func (e *ConfigParse) Unwrap() error { return e.Err }

// UnknownVoltageTier is returned when a tier name doesn't match LV..MAX.
type UnknownVoltageTier struct {
	Name string
}

func (e *UnknownVoltageTier) Error() string {
	return fmt.Sprintf("unknown voltage tier name %q", e.Name)
}

// UnknownItemName is returned when an item reference cannot be resolved.
type UnknownItemName struct {
	Name string
}

func (e *UnknownItemName) Error() string {
	return fmt.Sprintf("unknown item name %q", e.Name)
}

// InvalidDuration is returned when a recipe or GameTime duration is invalid.
type InvalidDuration struct {
	Reason string
}

func (e *InvalidDuration) Error() string {
	return fmt.Sprintf("invalid duration: %s", e.Reason)
}

// EmptyRecipe is returned when a recipe has neither inputs nor outputs.
type EmptyRecipe struct {
	MachineName string
}

func (e *EmptyRecipe) Error() string {
	return fmt.Sprintf("recipe for machine %q has neither inputs nor outputs", e.MachineName)
}

// RecipeExceedsMachineTier is returned when a recipe's inherent voltage
// tier is higher than the machine tier it was assigned to run on.
type RecipeExceedsMachineTier struct {
	MachineName string
	RecipeTier  int
	MachineTier int
}

func (e *RecipeExceedsMachineTier) Error() string {
	return fmt.Sprintf(
		"recipe for %q has inherent tier rank %d, which exceeds machine tier rank %d",
		e.MachineName, e.RecipeTier, e.MachineTier,
	)
}

// TargetUnreachable is returned when the solver proves a target infeasible.
type TargetUnreachable struct {
	Item string
}

func (e *TargetUnreachable) Error() string {
	return fmt.Sprintf("target %q is unreachable: no feasible production plan meets it", e.Item)
}

// SolverError wraps a non-infeasible failure reported by the LP solver.
type SolverError struct {
	Status string
	Detail string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error (status=%s): %s", e.Status, e.Detail)
}

// InvalidArgument is returned for an out-of-range argument: GameTime
// arithmetic that would produce a negative duration, a zero or negative
// divisor, a non-positive recipe stack or target quantity, or an
// unrecognized config file extension. Voltage subtraction clamps to zero
// instead of returning it.
type InvalidArgument struct {
	Reason string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}
