package burger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

// AddOn is a priced topping. Prices are never negative.
type AddOn struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// AddOnTable is the ordered set of add-ons a customer may pick from.
type AddOnTable struct {
	entries []AddOn
	index   map[string]int
}

var defaultAddOns = []struct {
	name  string
	price int64
}{
	{"Lettuce", 10},
	{"Tomato", 15},
	{"Cheese Slice", 25},
	{"Pickles", 5},
	{"Onion Rings", 20},
	{"Bacon", 30},
	{"BBQ Sauce", 20},
}

func DefaultAddOns() *AddOnTable {
	entries := make([]AddOn, 0, len(defaultAddOns))
	for _, a := range defaultAddOns {
		entries = append(entries, AddOn{Name: a.name, Price: decimal.NewFromInt(a.price)})
	}
	table, _ := NewAddOnTable(entries)
	return table
}

// NewAddOnTable validates entries and keeps their order. Names are matched
// case-insensitively, so two entries differing only in case collide.
func NewAddOnTable(entries []AddOn) (*AddOnTable, error) {
	table := &AddOnTable{
		entries: make([]AddOn, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "add-on name cannot be empty")
		}
		if entry.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("add-on %q has a negative price", name))
		}
		key := normalize(name)
		if _, dup := table.index[key]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("add-on %q is listed twice", name))
		}
		table.index[key] = len(table.entries)
		table.entries = append(table.entries, AddOn{Name: name, Price: entry.Price})
	}
	return table, nil
}

// Lookup resolves user input to the canonical add-on.
func (t *AddOnTable) Lookup(name string) (AddOn, error) {
	if t != nil {
		if i, ok := t.index[normalize(name)]; ok {
			return t.entries[i], nil
		}
	}
	return AddOn{}, pkgerrors.New(pkgerrors.CodeUnknownAddOn, fmt.Sprintf("%q is not an available add-on", strings.TrimSpace(name))).
		WithDetails(map[string]any{"allowed": t.Names()})
}

func (t *AddOnTable) List() []AddOn {
	if t == nil {
		return nil
	}
	out := make([]AddOn, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *AddOnTable) Names() []string {
	if t == nil {
		return []string{}
	}
	names := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		names = append(names, entry.Name)
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
