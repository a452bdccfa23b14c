package burger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

// Item is one burger on an order. Its name and base price are copied from the
// catalog when it is created, so later menu edits do not reach it.
type Item struct {
	CatalogID       *int64          `json:"catalog_id,omitempty"`
	Name            string          `json:"name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	ExtraCheese     bool            `json:"extra_cheese"`
	CheeseSurcharge decimal.Decimal `json:"cheese_surcharge"`
	AddOns          []AddOn         `json:"add_ons"`
}

func New(source catalog.Item) Item {
	item := Item{
		Name:      source.Name,
		BasePrice: source.BasePrice,
		AddOns:    []AddOn{},
	}
	if source.ID != nil {
		id := *source.ID
		item.CatalogID = &id
	}
	return item
}

// AddAddOn appends without deduplication; each entry is charged.
func (i *Item) AddAddOn(addOn AddOn) {
	i.AddOns = append(i.AddOns, addOn)
}

// SetExtraCheese records the flag together with the surcharge in force at the
// time, so the item keeps its price if the setting later changes.
func (i *Item) SetExtraCheese(on bool, surcharge decimal.Decimal) {
	i.ExtraCheese = on
	if on {
		i.CheeseSurcharge = surcharge
		return
	}
	i.CheeseSurcharge = decimal.Zero
}

func (i Item) TotalPrice() decimal.Decimal {
	total := i.BasePrice
	if i.ExtraCheese {
		total = total.Add(i.CheeseSurcharge)
	}
	for _, addOn := range i.AddOns {
		total = total.Add(addOn.Price)
	}
	return total
}

// Describe renders "Cheeseburger (₹415.00), Extra Cheese, Toppings: Lettuce, Bacon".
func (i Item) Describe(f money.Formatter) string {
	var b strings.Builder
	b.WriteString(i.Name)
	b.WriteString(" (")
	b.WriteString(f.Amount(i.BasePrice))
	b.WriteString(")")
	if i.ExtraCheese {
		b.WriteString(", Extra Cheese")
	}
	if len(i.AddOns) > 0 {
		b.WriteString(", Toppings: ")
		b.WriteString(i.ToppingsLine())
	}
	return b.String()
}

func (i Item) ToppingsLine() string {
	names := make([]string, 0, len(i.AddOns))
	for _, addOn := range i.AddOns {
		names = append(names, addOn.Name)
	}
	return strings.Join(names, ", ")
}

// Equal compares every field that affects what the customer gets and pays.
func (i Item) Equal(other Item) bool {
	if i.Name != other.Name || !i.BasePrice.Equal(other.BasePrice) || i.ExtraCheese != other.ExtraCheese {
		return false
	}
	if i.ExtraCheese && !i.CheeseSurcharge.Equal(other.CheeseSurcharge) {
		return false
	}
	if (i.CatalogID == nil) != (other.CatalogID == nil) {
		return false
	}
	if i.CatalogID != nil && *i.CatalogID != *other.CatalogID {
		return false
	}
	if len(i.AddOns) != len(other.AddOns) {
		return false
	}
	for idx := range i.AddOns {
		if i.AddOns[idx].Name != other.AddOns[idx].Name || !i.AddOns[idx].Price.Equal(other.AddOns[idx].Price) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (i Item) Clone() Item {
	out := i
	if i.CatalogID != nil {
		id := *i.CatalogID
		out.CatalogID = &id
	}
	out.AddOns = make([]AddOn, len(i.AddOns))
	copy(out.AddOns, i.AddOns)
	return out
}
