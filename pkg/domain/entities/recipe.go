package entities

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
	"github.com/gtnh-planner/factoryplan/pkg/domain/services/overclock"
)

// Recipe is a normalized machine recipe: its duration and energy cost have
// already been run through an overclock policy for MachineTier. The
// invariant Voltage(EuPerGameTick).Tier() <= MachineTier always holds.
type Recipe struct {
	MachineName   string
	MachineTier   VoltageTier
	Inputs        []ItemStack
	Outputs       []ItemStack
	Duration      GameTime
	EuPerGameTick Voltage
}

// NewRecipe validates and normalizes a raw recipe record. baseEuPerTick is
// the recipe's own base voltage as authored in config; policy is the
// overclock policy resolved for machineName (see overclock.PolicyForMachine).
func NewRecipe(
	machineName string,
	machineTier VoltageTier,
	inputs, outputs []ItemStack,
	duration GameTime,
	baseEuPerTick Voltage,
	policy overclock.Policy,
) (Recipe, error) {
	if len(inputs) == 0 && len(outputs) == 0 {
		return Recipe{}, &errs.EmptyRecipe{MachineName: machineName}
	}
	if duration.IsZero() {
		return Recipe{}, &errs.InvalidDuration{Reason: "recipe duration cannot be zero"}
	}
	for _, stack := range inputs {
		if stack.Quantity.Sign() <= 0 {
			return Recipe{}, &errs.InvalidArgument{
				Reason: "recipe for machine \"" + machineName + "\" has a non-positive input quantity for " + stack.Item.Name(),
			}
		}
	}
	for _, stack := range outputs {
		if stack.Quantity.Sign() <= 0 {
			return Recipe{}, &errs.InvalidArgument{
				Reason: "recipe for machine \"" + machineName + "\" has a non-positive output quantity for " + stack.Item.Name(),
			}
		}
	}

	recipeTierRank := baseEuPerTick.Tier().Rank()
	machineTierRank := machineTier.Rank()

	result, err := overclock.Apply(policy, recipeTierRank, machineTierRank, duration.AsTicks(), baseEuPerTick.Volts())
	if err != nil {
		if errors.Is(err, overclock.ErrExceedsMachineTier) {
			return Recipe{}, &errs.RecipeExceedsMachineTier{
				MachineName: machineName,
				RecipeTier:  recipeTierRank,
				MachineTier: machineTierRank,
			}
		}
		return Recipe{}, err
	}

	newDuration, err := GameTimeFromTicks(result.DurationTicks)
	if err != nil {
		return Recipe{}, err
	}
	newEu := NewVoltage(result.EuPerTick)

	scaledInputs := scaleStacks(inputs, result.Parallels)
	scaledOutputs := scaleStacks(outputs, result.Parallels)

	return Recipe{
		MachineName:   machineName,
		MachineTier:   machineTier,
		Inputs:        scaledInputs,
		Outputs:       scaledOutputs,
		Duration:      newDuration,
		EuPerGameTick: newEu,
	}, nil
}

func scaleStacks(stacks []ItemStack, parallels int) []ItemStack {
	if parallels == 1 {
		return stacks
	}
	scaled := make([]ItemStack, len(stacks))
	factor := decimal.NewFromInt(int64(parallels))
	for i, s := range stacks {
		scaled[i] = ItemStack{Item: s.Item, Quantity: s.Quantity.Mul(factor)}
	}
	return scaled
}

// TargetRate is a desired throughput for an item, in items per second.
type TargetRate struct {
	Item              Item
	QuantityPerSecond decimal.Decimal
}

// NewTargetRate requires a strictly positive quantity per second.
func NewTargetRate(item Item, quantityPerSecond decimal.Decimal) (TargetRate, error) {
	if quantityPerSecond.Sign() <= 0 {
		return TargetRate{}, &errs.InvalidArgument{Reason: "target quantity_per_second must be > 0"}
	}
	return TargetRate{Item: item, QuantityPerSecond: quantityPerSecond}, nil
}

// FactoryConfig is the immutable input to the LP builder: the recipes
// available and the output rates to satisfy.
type FactoryConfig struct {
	Recipes []Recipe
	Targets []TargetRate
}
