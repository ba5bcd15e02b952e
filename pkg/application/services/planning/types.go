// Package planning builds the flow-network linear program from a set of
// normalized recipes and target rates: machine multiplicities, per-item
// source/sink ports, and the link variables that connect every producer
// port to every consumer port of the same item.
package planning

import "github.com/gtnh-planner/factoryplan/pkg/domain/entities"

// Domain is the variable domain accepted by the external solver.
type Domain int

const (
	// NonNegativeReal variables are constrained to >= 0.
	NonNegativeReal Domain = iota
	// Real variables are unconstrained in sign (used only for SOURCE_<x>,
	// which carries a non-positive convention enforced by an explicit
	// constraint rather than the domain itself).
	Real
)

func (d Domain) String() string {
	if d == Real {
		return "Real"
	}
	return "NonNegativeReal"
}

// VarRef is a decision-variable name, following the naming rules in
// naming.go. It is the sole handle the solver sees.
type VarRef string

// LinearTerm is one coefficient*variable addend of a LinearExpr.
type LinearTerm struct {
	Var   VarRef
	Coeff float64
}

// LinearExpr is a sum of LinearTerms plus a constant.
type LinearExpr struct {
	Terms []LinearTerm
	Const float64
}

// AddTerm returns a copy of e with the term appended, for chaining. The
// receiver is not modified, so callers must use the returned value.
func (e LinearExpr) AddTerm(v VarRef, coeff float64) LinearExpr {
	e.Terms = append(e.Terms, LinearTerm{Var: v, Coeff: coeff})
	return e
}

// Relation is a constraint's comparison operator.
type Relation int

const (
	Eq Relation = iota
	LessEq
	GreaterEq
)

func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	default:
		return "="
	}
}

// Constraint is one row of the linear program: LHS Relation RHS.
type Constraint struct {
	Name     string
	LHS      LinearExpr
	Relation Relation
	RHS      float64
}

// ConstraintSystem is the builder's output: an explicit, inspectable model
// in place of the source program's pattern of assigning named attributes
// onto a live solver object. Variable order is preserved exactly as
// declared, which is what gives two builds of the same config identical
// variable orderings.
type ConstraintSystem struct {
	varOrder    []VarRef
	varDomain   map[VarRef]Domain
	Constraints []Constraint
	Objective   LinearExpr
}

// NewConstraintSystem returns an empty system ready for declarations.
func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{varDomain: make(map[VarRef]Domain)}
}

// DeclareVar registers v with domain, idempotently: re-declaring an
// already-known variable with the same domain is a no-op; declaring it
// again with a different domain panics, since that signals a builder bug.
func (cs *ConstraintSystem) DeclareVar(v VarRef, domain Domain) {
	if existing, ok := cs.varDomain[v]; ok {
		if existing != domain {
			panic("planning: variable " + string(v) + " redeclared with a different domain")
		}
		return
	}
	cs.varDomain[v] = domain
	cs.varOrder = append(cs.varOrder, v)
}

// AddConstraint appends c, preserving insertion order.
func (cs *ConstraintSystem) AddConstraint(c Constraint) {
	cs.Constraints = append(cs.Constraints, c)
}

// Vars returns all declared variables in declaration order.
func (cs *ConstraintSystem) Vars() []VarRef {
	return cs.varOrder
}

// DomainOf returns the declared domain for v and whether it was declared.
func (cs *ConstraintSystem) DomainOf(v VarRef) (Domain, bool) {
	d, ok := cs.varDomain[v]
	return d, ok
}

// MachineInfo records the recipe a machine variable M<i> refers to.
type MachineInfo struct {
	Index  int
	Recipe entities.Recipe
}

// SourceInfo records a SOURCE_<x> port's item.
type SourceInfo struct {
	Item string
}

// SinkInfo records a SINK_<x> port's item.
type SinkInfo struct {
	Item string
}

// LinkInfo records one producer/consumer link variable's endpoints.
type LinkInfo struct {
	ProducerPort VarRef
	ConsumerPort VarRef
	Item         string
}

// VariableIndex is the typed companion to ConstraintSystem's string names,
// populated during building. The extractor classifies variables by parsing
// their names, and uses this index to look up each machine's recipe and to
// cross-check the parsed SOURCE, SINK, and machine variables.
type VariableIndex struct {
	Machines []MachineInfo
	Sources  map[string]SourceInfo
	Sinks    map[string]SinkInfo
	Links    []LinkInfo
}

// NewVariableIndex returns an empty index.
func NewVariableIndex() *VariableIndex {
	return &VariableIndex{
		Sources: make(map[string]SourceInfo),
		Sinks:   make(map[string]SinkInfo),
	}
}
