package extractor

import (
	"fmt"
	"math"

	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
)

// Epsilon is the drop threshold below which a variable's value is treated
// as exactly zero and excluded from the graph.
const Epsilon = 1e-9

type classified struct {
	name   planning.VarRef
	parsed planning.ParsedVariable
	value  float64
}

// Extract builds a SolutionGraph from a solved value map. cs supplies the
// deterministic variable declaration order that drives node construction;
// idx is the typed index populated during building, used both to resolve
// machine names and to defensively cross-check the name-based
// classification of SOURCE_<x>, SINK_<x>, and M<i> variables. A mismatch
// between the two indicates a builder/extractor inconsistency and is
// surfaced as SolverError rather than silently trusting one source over the
// other. Port, junction, and link variables are not checked against idx.
func Extract(cs *planning.ConstraintSystem, idx *planning.VariableIndex, values map[planning.VarRef]float64) (*SolutionGraph, error) {
	recipeByIndex := make(map[int]string, len(idx.Machines))
	for _, m := range idx.Machines {
		recipeByIndex[m.Index] = m.Recipe.MachineName
	}

	var sources, sourceOuts, sinks, sinkIns, machines, machineIns, machineOuts, links []classified

	for _, v := range cs.Vars() {
		parsed := planning.ClassifyVariable(string(v))
		c := classified{name: v, parsed: parsed, value: values[v]}
		switch parsed.Kind {
		case planning.KindSource:
			sources = append(sources, c)
		case planning.KindSourceOut:
			sourceOuts = append(sourceOuts, c)
		case planning.KindSink:
			sinks = append(sinks, c)
		case planning.KindSinkIn:
			sinkIns = append(sinkIns, c)
		case planning.KindMachine:
			machines = append(machines, c)
		case planning.KindMachineIn:
			machineIns = append(machineIns, c)
		case planning.KindMachineOut:
			machineOuts = append(machineOuts, c)
		case planning.KindLink:
			links = append(links, c)
		case planning.KindSourceTax:
			// Objective-side bookkeeping only; it has no graph representation.
		case planning.KindUnknown:
			return nil, &errs.SolverError{Status: "internal", Detail: fmt.Sprintf("variable %q did not match any known naming pattern", v)}
		}
	}

	g := &SolutionGraph{}

	for _, c := range sources {
		if _, ok := idx.Sources[c.parsed.Item]; !ok {
			return nil, crossCheckError(c.name, "SOURCE")
		}
		if math.Abs(c.value) <= Epsilon {
			continue
		}
		g.Sources = append(g.Sources, Source{ID: sourceID(c.parsed.Item), Item: c.parsed.Item, Quantity: c.value})
	}

	for _, c := range sourceOuts {
		if math.Abs(c.value) <= Epsilon {
			continue
		}
		g.SourceJunctions = append(g.SourceJunctions, ItemJunction{ID: sourceOutID(c.parsed.Item), Item: c.parsed.Item, Quantity: c.value})
		g.ItemFlows = append(g.ItemFlows, ItemFlow{
			Start: sourceID(c.parsed.Item), End: sourceOutID(c.parsed.Item), Item: c.parsed.Item, Quantity: c.value,
		})
	}

	for _, c := range sinks {
		if _, ok := idx.Sinks[c.parsed.Item]; !ok {
			return nil, crossCheckError(c.name, "SINK")
		}
		if c.value <= Epsilon {
			continue
		}
		g.Sinks = append(g.Sinks, Sink{ID: sinkID(c.parsed.Item), Item: c.parsed.Item, Quantity: c.value})
	}

	for _, c := range sinkIns {
		if c.value <= Epsilon {
			continue
		}
		g.SinkJunctions = append(g.SinkJunctions, ItemJunction{ID: sinkInID(c.parsed.Item), Item: c.parsed.Item, Quantity: c.value})
		g.ItemFlows = append(g.ItemFlows, ItemFlow{
			Start: sinkInID(c.parsed.Item), End: sinkID(c.parsed.Item), Item: c.parsed.Item, Quantity: c.value,
		})
	}

	for _, c := range machines {
		name, ok := recipeByIndex[c.parsed.MachineIndex]
		if !ok {
			return nil, crossCheckError(c.name, "M")
		}
		g.Machines = append(g.Machines, Machine{
			ID: machineID(c.parsed.MachineIndex), Name: name, Quantity: c.value, RecipeIndex: c.parsed.MachineIndex,
		})
	}

	for _, c := range machineIns {
		if math.Abs(c.value) <= Epsilon {
			continue
		}
		mID := machineID(c.parsed.MachineIndex)
		pID := machineInID(c.parsed.MachineIndex, c.parsed.Item)
		g.InputPorts = append(g.InputPorts, MachineInputPort{ID: pID, MachineID: mID, Item: c.parsed.Item, Quantity: c.value})
		g.MachinePorts = append(g.MachinePorts, MachinePort{Start: pID, End: mID, MachineID: mID})
	}

	for _, c := range machineOuts {
		if math.Abs(c.value) <= Epsilon {
			continue
		}
		mID := machineID(c.parsed.MachineIndex)
		pID := machineOutID(c.parsed.MachineIndex, c.parsed.Item)
		g.OutputPorts = append(g.OutputPorts, MachineOutputPort{ID: pID, MachineID: mID, Item: c.parsed.Item, Quantity: c.value})
		g.MachinePorts = append(g.MachinePorts, MachinePort{Start: mID, End: pID, MachineID: mID})
	}

	for _, c := range links {
		if math.Abs(c.value) <= Epsilon {
			continue
		}
		producer := planning.ClassifyVariable(string(c.parsed.ProducerPort))
		consumer := planning.ClassifyVariable(string(c.parsed.ConsumerPort))

		startID, err := portNodeID(producer)
		if err != nil {
			return nil, crossCheckError(c.name, "link producer")
		}
		endID, err := portNodeID(consumer)
		if err != nil {
			return nil, crossCheckError(c.name, "link consumer")
		}

		g.ItemFlows = append(g.ItemFlows, ItemFlow{Start: startID, End: endID, Item: consumer.Item, Quantity: c.value})
	}

	return g, nil
}

func portNodeID(p planning.ParsedVariable) (string, error) {
	switch p.Kind {
	case planning.KindMachineOut:
		return machineOutID(p.MachineIndex, p.Item), nil
	case planning.KindMachineIn:
		return machineInID(p.MachineIndex, p.Item), nil
	case planning.KindSourceOut:
		return sourceOutID(p.Item), nil
	case planning.KindSinkIn:
		return sinkInID(p.Item), nil
	default:
		return "", fmt.Errorf("unexpected link endpoint kind")
	}
}

func crossCheckError(name planning.VarRef, expectedKind string) error {
	return &errs.SolverError{
		Status: "internal",
		Detail: fmt.Sprintf("variable %q classified as %s has no matching entry in the builder's variable index", name, expectedKind),
	}
}

func sourceID(item string) string       { return "source:" + item }
func sourceOutID(item string) string    { return "source_out:" + item }
func sinkID(item string) string         { return "sink:" + item }
func sinkInID(item string) string       { return "sink_in:" + item }
func machineID(index int) string        { return fmt.Sprintf("machine:%d", index) }
func machineInID(index int, item string) string {
	return fmt.Sprintf("machine_in:%d:%s", index, item)
}
func machineOutID(index int, item string) string {
	return fmt.Sprintf("machine_out:%d:%s", index, item)
}
