// Package overclock implements the tier-based recipe normalization
// policies: how a recipe's duration and per-tick energy cost change when
// it runs in a machine built for a higher voltage tier than the recipe's
// own base tier. It operates on plain integers so it has no dependency on
// the entities package; entities.NewRecipe is the caller that translates
// to and from Voltage/GameTime.
package overclock

import (
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/gtnh-planner/factoryplan/pkg/domain/voltagemath"
)

// ErrExceedsMachineTier is returned by Apply when the recipe's inherent
// tier ranks above the machine tier it was asked to run at. Callers that
// know the machine name (entities.NewRecipe) wrap this into
// errs.RecipeExceedsMachineTier with that context attached.
var ErrExceedsMachineTier = errors.New("recipe tier exceeds machine tier")

// Policy selects which overclock formula a machine recipe uses.
type Policy int

const (
	// Standard halves duration and quadruples energy per tier step.
	Standard Policy = iota
	// Perfect quarters duration (quadruples speed) and quadruples energy
	// per tier step.
	Perfect
	// Centrifuge runs N parallel recipe executions per machine tick,
	// trading some of the tier headroom for parallelism instead of pure
	// speed, per the Industrial Centrifuge's 1.8x/0.9x constants.
	Centrifuge
)

func (p Policy) String() string {
	switch p {
	case Standard:
		return "Standard"
	case Perfect:
		return "Perfect"
	case Centrifuge:
		return "Centrifuge"
	default:
		return "Unknown"
	}
}

// Result is the outcome of applying a Policy to a recipe.
type Result struct {
	DurationTicks int64
	EuPerTick     int64
	Parallels     int
}

// Apply normalizes a recipe's (durationTicks, euPerTick) from its inherent
// recipeTierRank up to machineTierRank. If recipeTierRank == machineTierRank
// the recipe is returned unchanged with Parallels=1. If recipeTierRank
// exceeds machineTierRank, it returns ErrExceedsMachineTier.
func Apply(policy Policy, recipeTierRank, machineTierRank int, durationTicks, euPerTick int64) (Result, error) {
	if recipeTierRank > machineTierRank {
		return Result{}, ErrExceedsMachineTier
	}
	if recipeTierRank == machineTierRank {
		return Result{DurationTicks: durationTicks, EuPerTick: euPerTick, Parallels: 1}, nil
	}

	delta := machineTierRank - recipeTierRank

	switch policy {
	case Perfect:
		newTicks := ceilDiv(durationTicks, math.Pow(4, float64(delta)))
		return Result{
			DurationTicks: maxInt64(1, newTicks),
			EuPerTick:     euPerTick * powInt64(4, delta),
			Parallels:     1,
		}, nil

	case Centrifuge:
		return applyCentrifuge(machineTierRank, durationTicks, euPerTick, delta)

	default: // Standard
		newTicks := ceilDiv(durationTicks, math.Pow(2, float64(delta)))
		return Result{
			DurationTicks: maxInt64(1, newTicks),
			EuPerTick:     euPerTick * powInt64(4, delta),
			Parallels:     1,
		}, nil
	}
}

func applyCentrifuge(machineTierRank int, durationTicks, euPerTick int64, delta int) (Result, error) {
	const speedMultiplier = 1.8
	const euMultiplier = 0.9

	maxParallels := machineTierRank * 2
	vmaxMachine := voltagemath.Vmax(machineTierRank)

	denom := float64(euPerTick) * euMultiplier * float64(maxParallels)
	parallels := maxParallels
	if denom > 0 {
		byBudget := int(math.Floor(float64(vmaxMachine) / denom))
		if byBudget < parallels {
			parallels = byBudget
		}
	}
	if parallels < 1 {
		parallels = 1
	}

	scaledVoltage := int64(float64(euPerTick) * float64(parallels))
	scaledTierRank := voltagemath.TierOfVoltage(scaledVoltage)
	deltaPrime := machineTierRank - scaledTierRank
	if deltaPrime < 0 {
		deltaPrime = 0
	}

	newTicks := ceilDiv(durationTicks, speedMultiplier*math.Pow(4, float64(deltaPrime)))
	newEu := int64(float64(euPerTick) * euMultiplier * math.Pow(4, float64(deltaPrime)))

	return Result{
		DurationTicks: maxInt64(1, newTicks),
		EuPerTick:     newEu,
		Parallels:     parallels,
	}, nil
}

func ceilDiv(ticks int64, divisor float64) int64 {
	return int64(math.Ceil(float64(ticks) / divisor))
}

func powInt64(base int64, exp int) int64 {
	result := int64(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// machineRegistration is a canonical machine name and the overclock policy
// it runs; the registry maps the lower-cased canonical name and each alias
// to one of these.
type machineRegistration struct {
	canonical string
	policy    Policy
}

var (
	registryMu sync.RWMutex
	registry   = map[string]machineRegistration{}
)

func init() {
	RegisterMachine("Electric Blast Furnace", []string{"ebf"}, Standard)
	RegisterMachine("Large Chemical Reactor", []string{"lcr"}, Perfect)
	RegisterMachine("Industrial Centrifuge", []string{"centrifuge"}, Centrifuge)
}

// RegisterMachine adds (or replaces) a canonical machine name, its
// case-insensitive aliases, and the overclock policy it uses. This is the
// extension point implementations are expected to expose.
func RegisterMachine(canonical string, aliases []string, policy Policy) {
	registryMu.Lock()
	defer registryMu.Unlock()

	reg := machineRegistration{canonical: canonical, policy: policy}
	registry[strings.ToLower(canonical)] = reg
	for _, alias := range aliases {
		registry[strings.ToLower(alias)] = reg
	}
}

// PolicyForMachine resolves a raw machine name to its canonical name and
// overclock policy. Unknown machine names default to Standard, with the
// canonical name left as the (trimmed) input.
func PolicyForMachine(name string) (canonical string, policy Policy) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	trimmed := strings.TrimSpace(name)
	if reg, ok := registry[strings.ToLower(trimmed)]; ok {
		return reg.canonical, reg.policy
	}
	return trimmed, Standard
}
