package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	"github.com/angelmondragon/burgershop-backend/pkg/config"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

func run(t *testing.T, script string) string {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	manager, err := session.NewManager(session.Options{
		Catalog:         catalog.NewSeeded(),
		Authenticator:   session.NewPasswordAuthenticator(config.AdminConfig{Password: "admin123"}),
		CheeseSurcharge: decimal.NewFromInt(50),
		Logger:          logg,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	c, err := New(manager, strings.NewReader(script), &out, logg)
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestMenuListsSeededBurgers(t *testing.T) {
	out := run(t, "menu\nquit\n")
	assert.Contains(t, out, "1. Cheeseburger - ₹415.00")
	assert.Contains(t, out, "6. Double Patty Burger - ₹600.00")
	assert.Contains(t, out, "Goodbye.")
}

func TestOrderFlow(t *testing.T) {
	script := strings.Join([]string{
		"select 1",
		"customer c1",
		"select 1",
		"n",
		"cheese slice",
		"pineapple",
		"",
		"view",
		"finish",
		"view",
		"quit",
	}, "\n") + "\n"

	out := run(t, script)
	assert.Contains(t, out, "Error: Set a customer ID first.")
	assert.Contains(t, out, "Customer ID set to c1.")
	assert.Contains(t, out, "is not an available add-on")
	assert.Contains(t, out, "Your Order:\nCheeseburger (₹415.00), Toppings: Cheese Slice\nTotal: ₹440.00 Rupees")
	assert.Contains(t, out, "Order for customer ID c1 has been finished.")
	assert.Equal(t, 2, strings.Count(out, "Error: Set a customer ID first."), "view after finish needs a new customer")
}

func TestSelectByNameWithExtraCheese(t *testing.T) {
	out := run(t, "customer c7\nselect veggie burger\ny\nbacon\n\nquit\n")
	assert.Contains(t, out, "Added Veggie Burger (₹374.00), Extra Cheese, Toppings: Bacon. Order total: ₹454.00 Rupees")
}

func TestDeleteItem(t *testing.T) {
	out := run(t, "customer c1\ndelete 1\nselect 2\nn\n\ndelete x\ndelete 1\nview\nquit\n")
	assert.Contains(t, out, "Error: Your order is empty.")
	assert.Contains(t, out, "Error: usage: delete <number>")
	assert.Contains(t, out, "Removed Veggie Burger.")
	assert.Contains(t, out, "Your Order:\nTotal: ₹0.00 Rupees")
}

func TestAdminAddsBurger(t *testing.T) {
	script := strings.Join([]string{
		"add-burger",
		"admin nope",
		"admin admin123",
		"add-burger",
		"Paneer Burger",
		"abc",
		"add-burger",
		"Paneer Burger",
		"399",
		"customer-mode",
		"menu",
	}, "\n") + "\n"

	out := run(t, script)
	assert.Contains(t, out, "Error: Admin mode is required to change the menu.")
	assert.Contains(t, out, "Error: Incorrect password. Access denied.")
	assert.Contains(t, out, "Admin mode enabled.")
	assert.Contains(t, out, "Error: Invalid price entered.")
	assert.Contains(t, out, "Added Paneer Burger at ₹399.00.")
	assert.Contains(t, out, "7. Paneer Burger - ₹399.00")
}

func TestUnknownCommandAndEOF(t *testing.T) {
	out := run(t, "dance\n")
	assert.Contains(t, out, `unknown command "dance"`)
	assert.NotContains(t, out, "Goodbye.")
}

func TestBlankCustomerRejected(t *testing.T) {
	out := run(t, "customer   \nquit\n")
	assert.Contains(t, out, "Error: Customer ID cannot be empty.")
}

func TestSelectUnknownNameSkipsPrompts(t *testing.T) {
	out := run(t, "customer c1\nselect tofu burger\nview\nquit\n")
	assert.Contains(t, out, `Error: burger "tofu burger" is not on the menu`)
	assert.NotContains(t, out, "Extra cheese?")
	assert.Contains(t, out, "Your Order:\nTotal: ₹0.00 Rupees")
}
