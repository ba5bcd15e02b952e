package extractor_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gtnh-planner/factoryplan/pkg/application/services/extractor"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/solver"
	"github.com/gtnh-planner/factoryplan/pkg/domain/entities"
	"github.com/gtnh-planner/factoryplan/pkg/domain/services/overclock"
)

func TestExtractTrivialChainProducesSourceMachineSinkGraph(t *testing.T) {
	table := entities.NewItemTable()
	inputs := []entities.ItemStack{entities.NewItemStack(table, "water", decimal.NewFromInt(1000))}
	outputs := []entities.ItemStack{entities.NewItemStack(table, "hydrogen", decimal.NewFromInt(1000))}
	duration, err := entities.GameTimeFromTicks(20)
	require.NoError(t, err)

	recipeA, err := entities.NewRecipe("Recipe A", entities.LV, inputs, outputs, duration, entities.NewVoltage(8), overclock.Standard)
	require.NoError(t, err)

	target, err := entities.NewTargetRate(table.Intern("hydrogen"), decimal.NewFromInt(500))
	require.NoError(t, err)

	config := entities.FactoryConfig{Recipes: []entities.Recipe{recipeA}, Targets: []entities.TargetRate{target}}

	cs, idx := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())
	solution, err := solver.NewSimplex().Solve(cs)
	require.NoError(t, err)
	require.Equal(t, solver.Optimal, solution.Status)

	graph, err := extractor.Extract(cs, idx, solution.Values)
	require.NoError(t, err)

	require.Len(t, graph.Machines, 1)
	require.Equal(t, "Recipe A", graph.Machines[0].Name)
	require.InDelta(t, 0.5, graph.Machines[0].Quantity, 1e-6)

	require.Len(t, graph.Sources, 1)
	require.Equal(t, "water", graph.Sources[0].Item)
	require.InDelta(t, -500, graph.Sources[0].Quantity, 1e-6)

	require.Len(t, graph.Sinks, 1)
	require.Equal(t, "hydrogen", graph.Sinks[0].Item)
	require.InDelta(t, 500, graph.Sinks[0].Quantity, 1e-6)

	require.NotEmpty(t, graph.ItemFlows)
}

func TestExtractDropsNearZeroVariables(t *testing.T) {
	cs := planning.NewConstraintSystem()
	cs.DeclareVar("SOURCE_water", planning.Real)
	cs.DeclareVar("SOURCE_OUT_water", planning.NonNegativeReal)
	cs.DeclareVar("SINK_hydrogen", planning.NonNegativeReal)
	cs.DeclareVar("SINK_IN_hydrogen", planning.NonNegativeReal)

	idx := planning.NewVariableIndex()
	idx.Sources["water"] = planning.SourceInfo{Item: "water"}
	idx.Sinks["hydrogen"] = planning.SinkInfo{Item: "hydrogen"}

	values := map[planning.VarRef]float64{
		"SOURCE_water":     -1e-12,
		"SOURCE_OUT_water": 1e-12,
		"SINK_hydrogen":     0,
		"SINK_IN_hydrogen":  0,
	}

	graph, err := extractor.Extract(cs, idx, values)
	require.NoError(t, err)
	require.Empty(t, graph.Sources)
	require.Empty(t, graph.Sinks)
}
