package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

const (
	msgNameRequired = "Burger name cannot be empty."
	msgInvalidPrice = "Invalid price entered."
)

// Item is a purchasable menu entry. ID is only set when the item is backed by
// a database row.
type Item struct {
	ID        *int64          `json:"id,omitempty"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// Catalog holds the menu. It performs no privilege checks; callers decide who
// may add items.
type Catalog struct {
	mu    sync.RWMutex
	items []Item
}

var seed = []struct {
	name  string
	price string
}{
	{"Cheeseburger", "415.00"},
	{"Veggie Burger", "374.00"},
	{"Chicken Burger", "457.00"},
	{"Fish Burger", "485.00"},
	{"Bacon Burger", "525.00"},
	{"Double Patty Burger", "600.00"},
}

// NewSeeded returns the in-memory starter menu.
func NewSeeded() *Catalog {
	items := make([]Item, 0, len(seed))
	for _, s := range seed {
		items = append(items, Item{Name: s.name, BasePrice: decimal.RequireFromString(s.price)})
	}
	return &Catalog{items: items}
}

// FromItems builds a catalog from already validated items, keeping their order.
func FromItems(items []Item) *Catalog {
	c := &Catalog{items: make([]Item, 0, len(items))}
	for _, item := range items {
		c.items = append(c.items, copyItem(item))
	}
	return c
}

// NewItem validates a name/price pair without touching any catalog.
func NewItem(name string, basePrice decimal.Decimal) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, msgNameRequired).
			WithDetails(map[string]string{"name": "is required"})
	}
	if basePrice.IsNegative() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidPrice).
			WithDetails(map[string]string{"base_price": "must be at least 0"})
	}
	return Item{Name: name, BasePrice: basePrice}, nil
}

// ParsePrice turns user input into a non-negative decimal price.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, msgInvalidPrice)
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidPrice)
	}
	return price, nil
}

func (c *Catalog) List() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, copyItem(item))
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Add validates and appends a new item, which is visible to List immediately.
func (c *Catalog) Add(name string, basePrice decimal.Decimal) (Item, error) {
	item, err := NewItem(name, basePrice)
	if err != nil {
		return Item{}, err
	}
	return c.Insert(item)
}

// Insert appends an item that may already carry a database id.
func (c *Catalog) Insert(item Item) (Item, error) {
	validated, err := NewItem(item.Name, item.BasePrice)
	if err != nil {
		return Item{}, err
	}
	validated.ID = item.ID

	c.mu.Lock()
	c.items = append(c.items, copyItem(validated))
	c.mu.Unlock()

	return copyItem(validated), nil
}

// Find returns the first item whose name matches, ignoring case and padding.
func (c *Catalog) Find(name string) (Item, error) {
	needle := strings.TrimSpace(name)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if strings.EqualFold(item.Name, needle) {
			return copyItem(item), nil
		}
	}
	return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("burger %q is not on the menu", needle))
}

// At returns the item at a 1-based menu position.
func (c *Catalog) At(position int) (Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if position < 1 || position > len(c.items) {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu has no item number %d", position))
	}
	return copyItem(c.items[position-1]), nil
}

func copyItem(item Item) Item {
	if item.ID != nil {
		id := *item.ID
		item.ID = &id
	}
	return item
}
