package planning

import (
	"github.com/gtnh-planner/factoryplan/pkg/domain/entities"
)

// BuildOptions tunes the objective's cycle-penalty coefficient. The
// specification calls the 50000 multiplier out as a fixed magic number
// large enough to dominate the machine-count term in practice but not
// derived from problem scale; this exposes it as a knob rather than
// hard-coding it, per the open question recorded against this component.
type BuildOptions struct {
	SourceTaxCoefficient float64
}

// DefaultBuildOptions returns the canonical tax coefficient.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{SourceTaxCoefficient: 50000}
}

// orderedSet preserves first-insertion order, which is what keeps two
// builds of the same config producing byte-identical variable orderings.
type orderedSet struct {
	order []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(item string) {
	if s.seen[item] {
		return
	}
	s.seen[item] = true
	s.order = append(s.order, item)
}

func (s *orderedSet) has(item string) bool { return s.seen[item] }

// BuildConstraintSystem constructs the flow-network LP for config: machine
// multiplicities, per-item source/sink ports, the bipartite link expansion
// between every producer and consumer port of the same item, and the
// minimize-machines-plus-raw-material-plus-cycle-tax objective.
//
// An item is a source candidate only when it is consumed by some recipe
// (never when it appears only as a target): a target item that no recipe
// can produce and that no recipe consumes has no SOURCE_<x> at all, so the
// flow-conservation constraints correctly pin its SINK to zero and the
// solver reports infeasible rather than silently free-sourcing the goal
// itself.
func BuildConstraintSystem(config entities.FactoryConfig, opts BuildOptions) (*ConstraintSystem, *VariableIndex) {
	cs := NewConstraintSystem()
	idx := NewVariableIndex()

	sourceItems := newOrderedSet()
	sinkItems := newOrderedSet()
	outputItems := newOrderedSet()

	producers := make(map[string][]VarRef)
	consumers := make(map[string][]VarRef)

	for i, recipe := range config.Recipes {
		idx.Machines = append(idx.Machines, MachineInfo{Index: i, Recipe: recipe})
		mVar := machineVar(i)
		cs.DeclareVar(mVar, NonNegativeReal)

		durationSeconds := recipe.Duration.AsSeconds()

		for _, stack := range recipe.Inputs {
			item := stack.Item.Name()
			sourceItems.add(item)

			inVar := machineInVar(i, item)
			cs.DeclareVar(inVar, NonNegativeReal)
			consumers[item] = append(consumers[item], inVar)

			qty, _ := stack.Quantity.Float64()
			coeff := durationSeconds / qty
			cs.AddConstraint(Constraint{
				Name:     "throughput_in_" + string(mVar) + "_" + item,
				LHS:      LinearExpr{}.AddTerm(mVar, 1).AddTerm(inVar, -coeff),
				Relation: Eq,
				RHS:      0,
			})
		}

		for _, stack := range recipe.Outputs {
			item := stack.Item.Name()
			outputItems.add(item)
			sinkItems.add(item)

			outVar := machineOutVar(i, item)
			cs.DeclareVar(outVar, NonNegativeReal)
			producers[item] = append(producers[item], outVar)

			qty, _ := stack.Quantity.Float64()
			coeff := durationSeconds / qty
			cs.AddConstraint(Constraint{
				Name:     "throughput_out_" + string(mVar) + "_" + item,
				LHS:      LinearExpr{}.AddTerm(mVar, 1).AddTerm(outVar, -coeff),
				Relation: Eq,
				RHS:      0,
			})
		}

		for _, in := range recipe.Inputs {
			inQty, _ := in.Quantity.Float64()
			inCoeff := durationSeconds / inQty
			inVar := machineInVar(i, in.Item.Name())
			for _, out := range recipe.Outputs {
				outQty, _ := out.Quantity.Float64()
				outCoeff := durationSeconds / outQty
				outVar := machineOutVar(i, out.Item.Name())
				cs.AddConstraint(Constraint{
					Name: "cross_couple_" + string(mVar) + "_" + in.Item.Name() + "_" + out.Item.Name(),
					LHS: LinearExpr{}.
						AddTerm(outVar, outCoeff).
						AddTerm(inVar, -inCoeff),
					Relation: Eq,
					RHS:      0,
				})
			}
		}
	}

	for _, target := range config.Targets {
		sinkItems.add(target.Item.Name())
	}

	for _, item := range sourceItems.order {
		srcVar := sourceVar(item)
		srcOutVar := sourceOutVar(item)
		cs.DeclareVar(srcVar, Real)
		cs.DeclareVar(srcOutVar, NonNegativeReal)
		idx.Sources[item] = SourceInfo{Item: item}

		cs.AddConstraint(Constraint{
			Name:     "source_bookkeeping_" + item,
			LHS:      LinearExpr{}.AddTerm(srcVar, 1).AddTerm(srcOutVar, 1),
			Relation: Eq,
			RHS:      0,
		})
		cs.AddConstraint(Constraint{
			Name:     "source_nonpositive_" + item,
			LHS:      LinearExpr{}.AddTerm(srcVar, 1),
			Relation: LessEq,
			RHS:      0,
		})

		producers[item] = append(producers[item], srcOutVar)
	}

	for _, item := range sinkItems.order {
		sinkVarRef := sinkVar(item)
		sinkInVarRef := sinkInVar(item)
		cs.DeclareVar(sinkVarRef, NonNegativeReal)
		cs.DeclareVar(sinkInVarRef, NonNegativeReal)
		idx.Sinks[item] = SinkInfo{Item: item}

		cs.AddConstraint(Constraint{
			Name:     "sink_bookkeeping_" + item,
			LHS:      LinearExpr{}.AddTerm(sinkVarRef, 1).AddTerm(sinkInVarRef, -1),
			Relation: Eq,
			RHS:      0,
		})

		consumers[item] = append(consumers[item], sinkInVarRef)
	}

	linkedItems := newOrderedSet()
	for _, item := range sourceItems.order {
		linkedItems.add(item)
	}
	for _, item := range sinkItems.order {
		linkedItems.add(item)
	}

	for _, item := range linkedItems.order {
		itemProducers := producers[item]
		itemConsumers := consumers[item]

		for _, p := range itemProducers {
			var portLinks []VarRef
			for _, c := range itemConsumers {
				linkVarRef := linkVar(p, c)
				cs.DeclareVar(linkVarRef, NonNegativeReal)
				idx.Links = append(idx.Links, LinkInfo{ProducerPort: p, ConsumerPort: c, Item: item})
				portLinks = append(portLinks, linkVarRef)
			}
			addPortConservation(cs, p, portLinks)
		}

		for _, c := range itemConsumers {
			var portLinks []VarRef
			for _, p := range itemProducers {
				portLinks = append(portLinks, linkVar(p, c))
			}
			addPortConservation(cs, c, portLinks)
		}
	}

	for _, target := range config.Targets {
		item := target.Item.Name()
		rate, _ := target.QuantityPerSecond.Float64()
		cs.AddConstraint(Constraint{
			Name:     "target_" + item,
			LHS:      LinearExpr{}.AddTerm(sinkVar(item), 1),
			Relation: GreaterEq,
			RHS:      rate,
		})
	}

	objective := LinearExpr{}
	for i := range config.Recipes {
		objective = objective.AddTerm(machineVar(i), 1)
	}
	for _, item := range sourceItems.order {
		objective = objective.AddTerm(sourceVar(item), -1)
	}

	for _, item := range sourceItems.order {
		if !outputItems.has(item) {
			continue
		}
		taxVar := sourceTaxVar(item)
		cs.DeclareVar(taxVar, NonNegativeReal)
		cs.AddConstraint(Constraint{
			Name:     "source_tax_" + item,
			LHS:      LinearExpr{}.AddTerm(taxVar, 1).AddTerm(sourceVar(item), opts.SourceTaxCoefficient),
			Relation: Eq,
			RHS:      0,
		})
		objective = objective.AddTerm(taxVar, 1)
	}

	cs.Objective = objective
	return cs, idx
}

// addPortConservation adds "port == sum(incident links)" as an equality
// constraint. A port with no incident links (an item produced but never
// consumed by anything, or vice versa) is pinned to zero.
func addPortConservation(cs *ConstraintSystem, port VarRef, links []VarRef) {
	expr := LinearExpr{}.AddTerm(port, 1)
	for _, link := range links {
		expr = expr.AddTerm(link, -1)
	}
	cs.AddConstraint(Constraint{
		Name:     "port_conservation_" + string(port),
		LHS:      expr,
		Relation: Eq,
		RHS:      0,
	})
}
