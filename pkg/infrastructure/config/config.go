// Package config loads a FactoryConfig from a JSON or YAML file, dispatched
// by extension, and resolves it into normalized domain entities: interning
// items, looking up machine overclock policies by name/alias, and running
// every recipe through entities.NewRecipe.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gtnh-planner/factoryplan/pkg/domain/entities"
	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
	"github.com/gtnh-planner/factoryplan/pkg/domain/services/overclock"
)

// rawRecipe mirrors the on-disk schema for one recipe record.
type rawRecipe struct {
	Machine string             `json:"m" yaml:"m"`
	Tier    string             `json:"tier" yaml:"tier"`
	Inputs  map[string]float64 `json:"inputs" yaml:"inputs"`
	Outputs map[string]float64 `json:"outputs" yaml:"outputs"`
	Dur     int64              `json:"dur" yaml:"dur"`
	Eut     int64              `json:"eut" yaml:"eut"`
}

// rawConfig mirrors the on-disk factory_config schema.
type rawConfig struct {
	Recipes []rawRecipe        `json:"recipes" yaml:"recipes"`
	Targets map[string]float64 `json:"targets" yaml:"targets"`
}

// Logger receives verbose recipe-construction tracing. Callers that don't
// want tracing pass a no-op implementation.
type Logger interface {
	Logf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Logf(string, ...any) {}

// Load reads path (dispatched on its .json/.yaml/.yml extension), parses
// it, and resolves it into an entities.FactoryConfig. logger may be nil,
// in which case tracing is discarded.
func Load(path string, logger Logger) (entities.FactoryConfig, *entities.ItemTable, error) {
	if logger == nil {
		logger = noopLogger{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
	}

	var raw rawConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
		}
	default:
		return entities.FactoryConfig{}, nil, &errs.ConfigParse{
			Path: path,
			Err:  &errs.InvalidArgument{Reason: "unrecognized config extension " + ext + "; expected .json, .yaml, or .yml"},
		}
	}

	logger.Logf("config: loaded %d raw recipe(s) and %d target(s) from %s", len(raw.Recipes), len(raw.Targets), path)

	table := entities.NewItemTable()
	recipes := make([]entities.Recipe, 0, len(raw.Recipes))

	for i, rr := range raw.Recipes {
		tier, err := entities.VoltageTierFromName(rr.Tier)
		if err != nil {
			return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
		}

		duration, err := entities.GameTimeFromTicks(rr.Dur)
		if err != nil {
			return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
		}

		eut := entities.NewVoltage(rr.Eut)

		inputs := stacksFromMap(table, rr.Inputs)
		outputs := stacksFromMap(table, rr.Outputs)

		canonical, policy := overclock.PolicyForMachine(rr.Machine)
		logger.Logf("config: recipe[%d] machine=%q -> canonical=%q policy=%s base_tier=%s machine_tier=%s",
			i, rr.Machine, canonical, policy, eut.Tier(), tier)

		recipe, err := entities.NewRecipe(canonical, tier, inputs, outputs, duration, eut, policy)
		if err != nil {
			return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
		}
		recipes = append(recipes, recipe)
	}

	targets := make([]entities.TargetRate, 0, len(raw.Targets))
	for _, itemName := range orderedKeys(raw.Targets) {
		rate := raw.Targets[itemName]
		item := table.Intern(itemName)
		target, err := entities.NewTargetRate(item, decimal.NewFromFloat(rate))
		if err != nil {
			return entities.FactoryConfig{}, nil, &errs.ConfigParse{Path: path, Err: err}
		}
		targets = append(targets, target)
	}

	return entities.FactoryConfig{Recipes: recipes, Targets: targets}, table, nil
}

func stacksFromMap(table *entities.ItemTable, m map[string]float64) []entities.ItemStack {
	stacks := make([]entities.ItemStack, 0, len(m))
	for _, itemName := range orderedKeys(m) {
		stacks = append(stacks, entities.NewItemStack(table, itemName, decimal.NewFromFloat(m[itemName])))
	}
	return stacks
}

// orderedKeys sorts map keys so config parsing is deterministic regardless
// of the JSON/YAML decoder's internal map ordering, matching the module's
// determinism requirement for variable-name generation order downstream.
func orderedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
