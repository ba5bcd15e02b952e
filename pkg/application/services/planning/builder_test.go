package planning_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
	"github.com/gtnh-planner/factoryplan/pkg/domain/entities"
	"github.com/gtnh-planner/factoryplan/pkg/domain/services/overclock"
)

// buildTrivialConfig mirrors the spec's "trivial" worked example: one
// recipe turning water into hydrogen, targeting hydrogen at 500/s.
func buildTrivialConfig(t *testing.T) entities.FactoryConfig {
	t.Helper()
	table := entities.NewItemTable()
	inputs := []entities.ItemStack{entities.NewItemStack(table, "water", decimal.NewFromInt(1000))}
	outputs := []entities.ItemStack{entities.NewItemStack(table, "hydrogen", decimal.NewFromInt(1000))}
	duration, err := entities.GameTimeFromTicks(20)
	require.NoError(t, err)

	recipeA, err := entities.NewRecipe("Recipe A", entities.LV, inputs, outputs, duration, entities.NewVoltage(8), overclock.Standard)
	require.NoError(t, err)

	target, err := entities.NewTargetRate(table.Intern("hydrogen"), decimal.NewFromInt(500))
	require.NoError(t, err)

	return entities.FactoryConfig{Recipes: []entities.Recipe{recipeA}, Targets: []entities.TargetRate{target}}
}

func TestBuildConstraintSystemDeclaresMachineAndPortVariables(t *testing.T) {
	config := buildTrivialConfig(t)
	cs, idx := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	names := make(map[planning.VarRef]bool)
	for _, v := range cs.Vars() {
		names[v] = true
	}

	require.True(t, names["M0"])
	require.True(t, names["M0_IN_water"])
	require.True(t, names["M0_OUT_hydrogen"])
	require.True(t, names["SOURCE_water"])
	require.True(t, names["SOURCE_OUT_water"])
	require.True(t, names["SINK_hydrogen"])
	require.True(t, names["SINK_IN_hydrogen"])
	require.True(t, names["M0_OUT_hydrogen_TO_SINK_IN_hydrogen"])

	require.Len(t, idx.Machines, 1)
	require.Equal(t, "Recipe A", idx.Machines[0].Recipe.MachineName)
}

// TestBuildConstraintSystemDoesNotSourceTargetItem resolves the spec's own
// literal-text-vs-worked-example contradiction: a target item must not get
// its own SOURCE_<x>, since hydrogen here is produced by recipe A and
// never consumed by any recipe.
func TestBuildConstraintSystemDoesNotSourceTargetItem(t *testing.T) {
	config := buildTrivialConfig(t)
	cs, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	for _, v := range cs.Vars() {
		require.NotEqual(t, planning.VarRef("SOURCE_hydrogen"), v)
		require.NotEqual(t, planning.VarRef("SOURCE_OUT_hydrogen"), v)
	}
}

func TestBuildConstraintSystemIsDeterministic(t *testing.T) {
	config := buildTrivialConfig(t)
	cs1, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())
	cs2, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	require.Equal(t, cs1.Vars(), cs2.Vars())
	require.Equal(t, len(cs1.Constraints), len(cs2.Constraints))
	for i := range cs1.Constraints {
		require.Equal(t, cs1.Constraints[i].Name, cs2.Constraints[i].Name)
	}
}

func TestBuildConstraintSystemEmitsTargetConstraint(t *testing.T) {
	config := buildTrivialConfig(t)
	cs, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	found := false
	for _, c := range cs.Constraints {
		if c.Name == "target_hydrogen" {
			found = true
			require.Equal(t, planning.GreaterEq, c.Relation)
			require.Equal(t, float64(500), c.RHS)
		}
	}
	require.True(t, found, "expected a target_hydrogen constraint")
}

func TestBuildConstraintSystemSourceTaxOnlyForProducibleInputs(t *testing.T) {
	table := entities.NewItemTable()
	duration, _ := entities.GameTimeFromTicks(20)

	recipeX, _ := entities.NewRecipe("Recipe X", entities.LV,
		[]entities.ItemStack{entities.NewItemStack(table, "Y", decimal.NewFromInt(1))},
		[]entities.ItemStack{entities.NewItemStack(table, "X", decimal.NewFromInt(1))},
		duration, entities.NewVoltage(8), overclock.Standard)

	recipeY, _ := entities.NewRecipe("Recipe Y", entities.LV,
		[]entities.ItemStack{
			entities.NewItemStack(table, "X", decimal.NewFromInt(1)),
			entities.NewItemStack(table, "Z", decimal.NewFromInt(1)),
		},
		[]entities.ItemStack{entities.NewItemStack(table, "Y", decimal.NewFromInt(1))},
		duration, entities.NewVoltage(8), overclock.Standard)

	target, _ := entities.NewTargetRate(table.Intern("X"), decimal.NewFromInt(10))
	config := entities.FactoryConfig{Recipes: []entities.Recipe{recipeX, recipeY}, Targets: []entities.TargetRate{target}}

	cs, _ := planning.BuildConstraintSystem(config, planning.DefaultBuildOptions())

	taxed := make(map[string]bool)
	for _, v := range cs.Vars() {
		parsed := planning.ClassifyVariable(string(v))
		if parsed.Kind == planning.KindSourceTax {
			taxed[parsed.Item] = true
		}
	}
	// X and Y are each both a recipe input and a recipe output; Z is only
	// ever an input, so it never earns a tax term.
	require.True(t, taxed["X"])
	require.True(t, taxed["Y"])
	require.False(t, taxed["Z"])
}
