package session

import (
	"strings"

	"github.com/angelmondragon/burgershop-backend/internal/orders"
)

// State is everything a terminal remembers between commands. Manager methods
// take a State and return a new one; the input is never modified.
type State struct {
	ActiveCustomerID string                  `json:"active_customer_id"`
	AdminMode        bool                    `json:"admin_mode"`
	Orders           map[string]orders.Order `json:"orders"`
	Customizing      bool                    `json:"customizing"`
}

func NewState() State {
	return State{Orders: map[string]orders.Order{}}
}

// HasCustomer reports whether the terminal is in the customer-active state.
func (s State) HasCustomer() bool {
	return strings.TrimSpace(s.ActiveCustomerID) != ""
}

// ActiveOrder returns a copy of the current customer's order.
func (s State) ActiveOrder() orders.Order {
	if !s.HasCustomer() {
		return orders.Order{}
	}
	return s.Orders[s.ActiveCustomerID].Clone()
}

func (s State) Clone() State {
	out := s
	out.Orders = make(map[string]orders.Order, len(s.Orders))
	for id, order := range s.Orders {
		out.Orders[id] = order.Clone()
	}
	return out
}
