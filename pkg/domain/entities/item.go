package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is an interned value identified by a normalized name (spaces
// replaced by underscores). Equality is by name.
type Item struct {
	name string
}

// Name returns the normalized item name.
func (i Item) Name() string { return i.name }

func normalizeItemName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// ItemTable interns items so the same normalized name always yields an
// equal Item. It is owned by whatever is building a FactoryConfig (there is
// no process-wide cache); pass it by reference to every recipe/target
// constructor used during a single load.
type ItemTable struct {
	items map[string]Item
}

// NewItemTable creates an empty interning table.
func NewItemTable() *ItemTable {
	return &ItemTable{items: make(map[string]Item)}
}

// Intern returns the canonical Item for name, creating it on first use.
func (t *ItemTable) Intern(name string) Item {
	normalized := normalizeItemName(name)
	if item, ok := t.items[normalized]; ok {
		return item
	}
	item := Item{name: normalized}
	t.items[normalized] = item
	return item
}

// ItemStack pairs an Item with a quantity produced/consumed per recipe
// execution. Quantity is stored as decimal.Decimal to keep config-supplied
// fractional/probabilistic quantities exact until they reach the LP
// boundary, where they are converted to float64 rates.
type ItemStack struct {
	Item     Item
	Quantity decimal.Decimal
}

// NewItemStack builds an ItemStack, interning its item through table.
func NewItemStack(table *ItemTable, itemName string, quantity decimal.Decimal) ItemStack {
	return ItemStack{Item: table.Intern(itemName), Quantity: quantity}
}
