package planning

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Variable name generators. These exact patterns are normative: the
// extractor parses them back into typed nodes, so changing a separator
// here breaks round-tripping.

func machineVar(index int) VarRef {
	return VarRef(fmt.Sprintf("M%d", index))
}

func machineInVar(index int, item string) VarRef {
	return VarRef(fmt.Sprintf("M%d_IN_%s", index, item))
}

func machineOutVar(index int, item string) VarRef {
	return VarRef(fmt.Sprintf("M%d_OUT_%s", index, item))
}

func sourceVar(item string) VarRef {
	return VarRef("SOURCE_" + item)
}

func sourceOutVar(item string) VarRef {
	return VarRef("SOURCE_OUT_" + item)
}

func sourceTaxVar(item string) VarRef {
	return VarRef("SOURCE_TAX_" + item)
}

func sinkVar(item string) VarRef {
	return VarRef("SINK_" + item)
}

func sinkInVar(item string) VarRef {
	return VarRef("SINK_IN_" + item)
}

// linkSeparator is the sole delimiter between a producer port and a
// consumer port in a link variable name. It must not occur inside any
// other port name. Item-name normalization only replaces spaces with
// underscores and does not reject names containing it; a port whose item
// name contains it is classified as a link.
const linkSeparator = "_TO_"

func linkVar(producer, consumer VarRef) VarRef {
	return VarRef(string(producer) + linkSeparator + string(consumer))
}

// VariableKind tags what a parsed variable name refers to.
type VariableKind int

const (
	KindUnknown VariableKind = iota
	KindMachine
	KindMachineIn
	KindMachineOut
	KindSource
	KindSourceOut
	KindSourceTax
	KindSink
	KindSinkIn
	KindLink
)

// ParsedVariable is the result of classifying a variable name.
type ParsedVariable struct {
	Kind         VariableKind
	MachineIndex int    // valid for KindMachine, KindMachineIn, KindMachineOut
	Item         string // valid for every kind except KindMachine and KindLink
	ProducerPort VarRef // valid for KindLink
	ConsumerPort VarRef // valid for KindLink
}

var (
	reMachine    = regexp.MustCompile(`^M(\d+)$`)
	reMachineIn  = regexp.MustCompile(`^M(\d+)_IN_(.+)$`)
	reMachineOut = regexp.MustCompile(`^M(\d+)_OUT_(.+)$`)
	reSourceTax  = regexp.MustCompile(`^SOURCE_TAX_(.+)$`)
	reSourceOut  = regexp.MustCompile(`^SOURCE_OUT_(.+)$`)
	reSource     = regexp.MustCompile(`^SOURCE_(.+)$`)
	reSinkIn     = regexp.MustCompile(`^SINK_IN_(.+)$`)
	reSink       = regexp.MustCompile(`^SINK_(.+)$`)
)

// ClassifyVariable parses name against the naming rules in §4.4.4 of the
// model this package builds against. The link pattern is tried last: every
// non-link pattern is checked first, and any candidate match whose captured
// remainder still contains the link separator is rejected and falls
// through, since that remainder actually belongs to a link variable
// (e.g. "M0_OUT_water_TO_M1_IN_water" must classify as a link, not as a
// machine-output port named "water_TO_M1_IN_water").
func ClassifyVariable(name string) ParsedVariable {
	if m := reSourceTax.FindStringSubmatch(name); m != nil && !strings.Contains(m[1], linkSeparator) {
		return ParsedVariable{Kind: KindSourceTax, Item: m[1]}
	}
	if m := reSourceOut.FindStringSubmatch(name); m != nil && !strings.Contains(m[1], linkSeparator) {
		return ParsedVariable{Kind: KindSourceOut, Item: m[1]}
	}
	if m := reSinkIn.FindStringSubmatch(name); m != nil && !strings.Contains(m[1], linkSeparator) {
		return ParsedVariable{Kind: KindSinkIn, Item: m[1]}
	}
	if m := reSource.FindStringSubmatch(name); m != nil && !strings.Contains(m[1], linkSeparator) {
		return ParsedVariable{Kind: KindSource, Item: m[1]}
	}
	if m := reSink.FindStringSubmatch(name); m != nil && !strings.Contains(m[1], linkSeparator) {
		return ParsedVariable{Kind: KindSink, Item: m[1]}
	}
	if m := reMachine.FindStringSubmatch(name); m != nil {
		index, _ := strconv.Atoi(m[1])
		return ParsedVariable{Kind: KindMachine, MachineIndex: index}
	}
	if m := reMachineIn.FindStringSubmatch(name); m != nil && !strings.Contains(m[2], linkSeparator) {
		index, _ := strconv.Atoi(m[1])
		return ParsedVariable{Kind: KindMachineIn, MachineIndex: index, Item: m[2]}
	}
	if m := reMachineOut.FindStringSubmatch(name); m != nil && !strings.Contains(m[2], linkSeparator) {
		index, _ := strconv.Atoi(m[1])
		return ParsedVariable{Kind: KindMachineOut, MachineIndex: index, Item: m[2]}
	}
	if idx := strings.Index(name, linkSeparator); idx >= 0 {
		producer := VarRef(name[:idx])
		consumer := VarRef(name[idx+len(linkSeparator):])
		return ParsedVariable{Kind: KindLink, ProducerPort: producer, ConsumerPort: consumer}
	}
	return ParsedVariable{Kind: KindUnknown}
}
