package planning

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyVariableMachine(t *testing.T) {
	p := ClassifyVariable("M0")
	require.Equal(t, KindMachine, p.Kind)
	require.Equal(t, 0, p.MachineIndex)
}

func TestClassifyVariableMachineInOut(t *testing.T) {
	in := ClassifyVariable("M2_IN_water")
	require.Equal(t, KindMachineIn, in.Kind)
	require.Equal(t, 2, in.MachineIndex)
	require.Equal(t, "water", in.Item)

	out := ClassifyVariable("M2_OUT_hydrogen")
	require.Equal(t, KindMachineOut, out.Kind)
	require.Equal(t, "hydrogen", out.Item)
}

func TestClassifyVariableSourceFamily(t *testing.T) {
	require.Equal(t, KindSourceTax, ClassifyVariable("SOURCE_TAX_water").Kind)
	require.Equal(t, KindSourceOut, ClassifyVariable("SOURCE_OUT_water").Kind)
	require.Equal(t, KindSource, ClassifyVariable("SOURCE_water").Kind)
}

func TestClassifyVariableSinkFamily(t *testing.T) {
	require.Equal(t, KindSinkIn, ClassifyVariable("SINK_IN_hydrogen").Kind)
	require.Equal(t, KindSink, ClassifyVariable("SINK_hydrogen").Kind)
}

// TestClassifyVariableLinkWinsOverMachinePatternSubstring is the ordering
// rule spelled out in the naming rules: a link variable's full name
// contains "_OUT_" and "_IN_" substrings that must not be mistaken for a
// machine port classification.
func TestClassifyVariableLinkWinsOverMachinePatternSubstring(t *testing.T) {
	p := ClassifyVariable("M0_OUT_water_TO_M1_IN_water")
	require.Equal(t, KindLink, p.Kind)
	require.Equal(t, VarRef("M0_OUT_water"), p.ProducerPort)
	require.Equal(t, VarRef("M1_IN_water"), p.ConsumerPort)
}

func TestClassifyVariableLinkFromSourceToSink(t *testing.T) {
	p := ClassifyVariable("SOURCE_OUT_water_TO_SINK_IN_water")
	require.Equal(t, KindLink, p.Kind)
	require.Equal(t, VarRef("SOURCE_OUT_water"), p.ProducerPort)
	require.Equal(t, VarRef("SINK_IN_water"), p.ConsumerPort)
}

func TestClassifyVariableUnknownFallsThrough(t *testing.T) {
	require.Equal(t, KindUnknown, ClassifyVariable("garbage").Kind)
}
