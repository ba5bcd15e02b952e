package entities

import (
	"strings"

	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
	"github.com/gtnh-planner/factoryplan/pkg/domain/voltagemath"
)

// VoltageTier is a totally ordered rank in 1..14 (LV..MAX); comparison and
// arithmetic are by integer rank.
type VoltageTier int

const (
	LV VoltageTier = iota + 1
	MV
	HV
	EV
	IV
	LUV
	ZPM
	UV
	UHV
	UEV
	UIV
	UMV
	UXV
	MAX
)

var tierNames = [...]string{
	LV: "LV", MV: "MV", HV: "HV", EV: "EV", IV: "IV", LUV: "LUV", ZPM: "ZPM",
	UV: "UV", UHV: "UHV", UEV: "UEV", UIV: "UIV", UMV: "UMV", UXV: "UXV", MAX: "MAX",
}

// Rank returns the tier's integer rank (1..14).
func (t VoltageTier) Rank() int { return int(t) }

func (t VoltageTier) String() string {
	if t.Rank() < int(LV) || t.Rank() > int(MAX) {
		return "INVALID"
	}
	return tierNames[t]
}

// MaxVoltage returns this tier's canonical ceiling voltage.
func (t VoltageTier) MaxVoltage() Voltage {
	return Voltage{volts: voltagemath.Vmax(t.Rank())}
}

// Less reports whether t ranks below other.
func (t VoltageTier) Less(other VoltageTier) bool { return t.Rank() < other.Rank() }

// VoltageTierFromName does a case-insensitive lookup of a tier by name.
func VoltageTierFromName(name string) (VoltageTier, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for rank := int(LV); rank <= int(MAX); rank++ {
		if tierNames[rank] == upper {
			return VoltageTier(rank), nil
		}
	}
	return 0, &errs.UnknownVoltageTier{Name: name}
}

// VoltageTierFromRank clamps an arbitrary rank into the valid tier range.
func VoltageTierFromRank(rank int) VoltageTier {
	if rank < int(LV) {
		return LV
	}
	if rank > int(MAX) {
		return MAX
	}
	return VoltageTier(rank)
}

// Voltage is a non-negative integer energy-per-tick value.
type Voltage struct {
	volts int64
}

// NewVoltage clamps a negative input to 0.
func NewVoltage(v int64) Voltage {
	if v < 0 {
		v = 0
	}
	return Voltage{volts: v}
}

// VoltageFromTier returns the canonical voltage for a tier.
func VoltageFromTier(t VoltageTier) Voltage {
	return t.MaxVoltage()
}

// Volts returns the raw integer voltage.
func (v Voltage) Volts() int64 { return v.volts }

// Tier returns the smallest tier T such that v <= Vmax(T); V=0 maps to LV.
func (v Voltage) Tier() VoltageTier {
	return VoltageTierFromRank(voltagemath.TierOfVoltage(v.volts))
}

func (v Voltage) Add(other Voltage) Voltage {
	return NewVoltage(v.volts + other.volts)
}

func (v Voltage) Sub(other Voltage) Voltage {
	return NewVoltage(v.volts - other.volts)
}

// MulScalar scales the voltage by a real factor, truncating toward zero.
func (v Voltage) MulScalar(factor float64) Voltage {
	return NewVoltage(int64(float64(v.volts) * factor))
}

// DivScalar divides the voltage by a real factor, truncating toward zero.
// Mirrors GameTime.DivScalar: a zero or negative factor raises
// InvalidArgument rather than silently producing an Inf/NaN-derived volts
// value.
func (v Voltage) DivScalar(factor float64) (Voltage, error) {
	if factor <= 0 {
		return Voltage{}, &errs.InvalidArgument{Reason: "cannot divide Voltage by zero or a negative scalar"}
	}
	return NewVoltage(int64(float64(v.volts) / factor)), nil
}

// DivVoltage returns the real-valued ratio of two voltages.
func (v Voltage) DivVoltage(other Voltage) float64 {
	return float64(v.volts) / float64(other.volts)
}

func (v Voltage) Less(other Voltage) bool           { return v.volts < other.volts }
func (v Voltage) LessOrEqual(other Voltage) bool    { return v.volts <= other.volts }
func (v Voltage) Greater(other Voltage) bool        { return v.volts > other.volts }
func (v Voltage) GreaterOrEqual(other Voltage) bool { return v.volts >= other.volts }
func (v Voltage) Equal(other Voltage) bool          { return v.volts == other.volts }
func (v Voltage) LessInt(n int64) bool              { return v.volts < n }
func (v Voltage) GreaterInt(n int64) bool           { return v.volts > n }
