package solver_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/application/services/solver"
	"github.com/gtnh-planner/factoryplan/pkg/domain/entities"
	"github.com/gtnh-planner/factoryplan/pkg/domain/services/overclock"
)

// TestSimplexSolvesTrivialChain mirrors the "trivial" worked example:
// Recipe A turns 1000 water into 1000 hydrogen every 20 ticks, target
// hydrogen >= 500/s. The optimum runs the machine at half utilization.
func TestSimplexSolvesTrivialChain(t *testing.T) {
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

	cs, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	solution, err := solver.NewSimplex().Solve(cs)
	require.NoError(t, err)
	require.Equal(t, solver.Optimal, solution.Status)

	require.InDelta(t, 0.5, solution.Values["M0"], 1e-6)
	require.InDelta(t, -500, solution.Values["SOURCE_water"], 1e-6)
	require.InDelta(t, 500, solution.Values["SINK_hydrogen"], 1e-6)
}

// TestSimplexReportsInfeasibleForUnreachableTarget covers a target item no
// recipe produces and no recipe consumes.
func TestSimplexReportsInfeasibleForUnreachableTarget(t *testing.T) {
	table := entities.NewItemTable()
	duration, _ := entities.GameTimeFromTicks(20)
	recipeA, err := entities.NewRecipe(
		"Recipe A", entities.LV,
		[]entities.ItemStack{entities.NewItemStack(table, "water", decimal.NewFromInt(1000))},
		[]entities.ItemStack{entities.NewItemStack(table, "oxygen", decimal.NewFromInt(1000))},
		duration, entities.NewVoltage(8), overclock.Standard,
	)
	require.NoError(t, err)

	target, err := entities.NewTargetRate(table.Intern("unobtainium"), decimal.NewFromInt(1))
	require.NoError(t, err)

	config := entities.FactoryConfig{Recipes: []entities.Recipe{recipeA}, Targets: []entities.TargetRate{target}}
	cs, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	solution, err := solver.NewSimplex().Solve(cs)
	require.NoError(t, err)
	require.Equal(t, solver.Infeasible, solution.Status)
}
