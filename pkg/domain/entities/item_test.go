package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestItemTableInternsByNormalizedName(t *testing.T) {
	table := NewItemTable()
	a := table.Intern("liquid oxygen")
	b := table.Intern(" liquid oxygen ")
	require.Equal(t, a, b)
	require.Equal(t, "liquid_oxygen", b.Name())
}

func TestItemTableDistinctNamesAreDistinct(t *testing.T) {
	table := NewItemTable()
	water := table.Intern("water")
	hydrogen := table.Intern("hydrogen")
	require.NotEqual(t, water, hydrogen)
}

func TestNewItemStack(t *testing.T) {
	table := NewItemTable()
	stack := NewItemStack(table, "water", decimal.NewFromInt(1000))
	require.Equal(t, "water", stack.Item.Name())
	require.True(t, stack.Quantity.Equal(decimal.NewFromInt(1000)))
}
