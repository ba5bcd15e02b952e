package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameTimeFromTicks(t *testing.T) {
	gt, err := GameTimeFromTicks(20)
	require.NoError(t, err)
	require.Equal(t, float64(1), gt.AsSeconds())
	require.Equal(t, int64(20), gt.AsTicks())
}

func TestGameTimeFromTicksRejectsNegative(t *testing.T) {
	_, err := GameTimeFromTicks(-1)
	require.Error(t, err)
}

func TestGameTimeAsTicksCeils(t *testing.T) {
	gt, err := GameTimeFromSeconds(1.01)
	require.NoError(t, err)
	require.Equal(t, int64(21), gt.AsTicks())
}

func TestGameTimeSubRejectsNegativeResult(t *testing.T) {
	a, _ := GameTimeFromSeconds(1)
	b, _ := GameTimeFromSeconds(2)
	_, err := a.Sub(b)
	require.Error(t, err)
}

func TestGameTimeMulScalarRejectsNegative(t *testing.T) {
	a, _ := GameTimeFromSeconds(1)
	_, err := a.MulScalar(-1)
	require.Error(t, err)
}

func TestGameTimeOrdering(t *testing.T) {
	a, _ := GameTimeFromSeconds(1)
	b, _ := GameTimeFromSeconds(2)
	require.True(t, a.Less(b))
	require.True(t, b.Greater(a))
	require.True(t, a.LessOrEqual(a))
}
