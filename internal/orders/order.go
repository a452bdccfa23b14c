package orders

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

// Order is a customer's running list of burgers.
type Order struct {
	Items []burger.Item `json:"items"`
}

func (o *Order) Add(item burger.Item) {
	o.Items = append(o.Items, item)
}

// Remove drops the first item equal to target and reports whether one was found.
func (o *Order) Remove(target burger.Item) bool {
	for i, item := range o.Items {
		if item.Equal(target) {
			o.Items = append(o.Items[:i:i], o.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (o Order) Len() int {
	return len(o.Items)
}

func (o Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// Last returns a pointer into the order so the item being customized can be changed in place.
func (o *Order) Last() *burger.Item {
	if len(o.Items) == 0 {
		return nil
	}
	return &o.Items[len(o.Items)-1]
}

func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// Render produces the customer facing summary:
//
//	Your Order:
//	Cheeseburger (₹415.00), Toppings: Cheese Slice
//	Total: ₹440.00 Rupees
func (o Order) Render(f money.Formatter) string {
	lines := make([]string, 0, len(o.Items)+2)
	lines = append(lines, "Your Order:")
	for _, item := range o.Items {
		lines = append(lines, item.Describe(f))
	}
	lines = append(lines, "Total: "+f.Total(o.Total()))
	return strings.Join(lines, "\n")
}

func (o Order) Clone() Order {
	out := Order{Items: make([]burger.Item, 0, len(o.Items))}
	for _, item := range o.Items {
		out.Items = append(out.Items, item.Clone())
	}
	return out
}
