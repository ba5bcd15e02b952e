package entities

import (
	"math"

	"github.com/gtnh-planner/factoryplan/pkg/domain/errs"
)

// TicksPerSecond is the game's tick rate: 20 ticks = 1 second.
const TicksPerSecond = 20

// GameTime is a non-negative duration. Internal storage is seconds (float)
// for precision; AsTicks() always returns the ceiling tick count.
type GameTime struct {
	seconds float64
}

// GameTimeFromTicks requires ticks >= 0.
func GameTimeFromTicks(ticks int64) (GameTime, error) {
	if ticks < 0 {
		return GameTime{}, &errs.InvalidArgument{Reason: "GameTime ticks cannot be negative"}
	}
	return GameTime{seconds: float64(ticks) / TicksPerSecond}, nil
}

// GameTimeFromSeconds requires seconds >= 0.
func GameTimeFromSeconds(seconds float64) (GameTime, error) {
	if seconds < 0 {
		return GameTime{}, &errs.InvalidArgument{Reason: "GameTime seconds cannot be negative"}
	}
	return GameTime{seconds: seconds}, nil
}

// AsTicks returns the ceiling of seconds*20 as an integer tick count.
func (g GameTime) AsTicks() int64 {
	return int64(math.Ceil(g.seconds * TicksPerSecond))
}

// AsSeconds returns the exact internal value.
func (g GameTime) AsSeconds() float64 { return g.seconds }

// IsZero reports whether this duration is exactly zero.
func (g GameTime) IsZero() bool { return g.seconds == 0 }

func (g GameTime) Add(other GameTime) GameTime {
	return GameTime{seconds: g.seconds + other.seconds}
}

// Sub raises InvalidArgument if the result would be negative.
func (g GameTime) Sub(other GameTime) (GameTime, error) {
	return GameTimeFromSeconds(g.seconds - other.seconds)
}

// MulScalar raises InvalidArgument for a negative scalar.
func (g GameTime) MulScalar(scalar float64) (GameTime, error) {
	if scalar < 0 {
		return GameTime{}, &errs.InvalidArgument{Reason: "cannot multiply GameTime by a negative scalar"}
	}
	return GameTimeFromSeconds(g.seconds * scalar)
}

// DivScalar raises InvalidArgument for a non-positive scalar.
func (g GameTime) DivScalar(scalar float64) (GameTime, error) {
	if scalar <= 0 {
		return GameTime{}, &errs.InvalidArgument{Reason: "cannot divide GameTime by zero or a negative scalar"}
	}
	return GameTimeFromSeconds(g.seconds / scalar)
}

func (g GameTime) Less(other GameTime) bool           { return g.seconds < other.seconds }
func (g GameTime) LessOrEqual(other GameTime) bool    { return g.seconds <= other.seconds }
func (g GameTime) Greater(other GameTime) bool        { return g.seconds > other.seconds }
func (g GameTime) GreaterOrEqual(other GameTime) bool { return g.seconds >= other.seconds }
