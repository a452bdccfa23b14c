// Package console is the interactive counter terminal used by cmd/pos.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

const helpText = `Commands:
  menu                   show the burgers
  customer <id>          start or resume a customer's order
  admin <password>       enter admin mode
  customer-mode          leave admin mode
  add-burger             add a burger to the menu (admin)
  select <number|name>   add a burger to the order
  view                   show the current order
  delete <number>        remove a burger from the order
  finish                 finish the current order
  quit                   exit`

var errQuit = errors.New("quit")

// Console reads one command per line and keeps the session state between them.
type Console struct {
	manager *session.Manager
	in      *bufio.Scanner
	out     io.Writer
	logg    *logger.Logger
	state   session.State
}

func New(manager *session.Manager, in io.Reader, out io.Writer, logg *logger.Logger) (*Console, error) {
	if manager == nil {
		return nil, errors.New("session manager required")
	}
	if in == nil || out == nil {
		return nil, errors.New("input and output required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Console{
		manager: manager,
		in:      bufio.NewScanner(in),
		out:     out,
		logg:    logg,
		state:   session.NewState(),
	}, nil
}

// Run processes commands until quit, end of input or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.println("Welcome to the Burger Shop. Type 'help' for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := c.prompt(c.promptLabel())
		if !ok {
			return c.in.Err()
		}
		err := c.dispatch(ctx, line)
		if errors.Is(err, errQuit) {
			c.println("Goodbye.")
			return nil
		}
		if err != nil {
			c.logg.Debug(c.logg.WithField(ctx, "error", err.Error()), "console.command_rejected")
			c.printError(err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help":
		c.println(helpText)
	case "menu":
		c.printMenu()
	case "customer":
		next, err := c.manager.SetCustomer(c.state, arg)
		if err != nil {
			return err
		}
		c.state = next
		c.printf("Customer ID set to %s.\n", next.ActiveCustomerID)
	case "admin":
		next, err := c.manager.EnterAdminMode(ctx, c.state, arg)
		if err != nil {
			return err
		}
		c.state = next
		c.println("Admin mode enabled.")
	case "customer-mode":
		c.state = c.manager.ExitAdminMode(c.state)
		c.println("Switched to customer mode.")
	case "add-burger":
		return c.addBurger(ctx)
	case "select":
		return c.selectBurger(arg)
	case "view":
		view, err := c.manager.ViewOrder(c.state)
		if err != nil {
			return err
		}
		c.println(view.Text)
	case "delete":
		return c.deleteItem(arg)
	case "finish":
		next, receipt, err := c.manager.FinishOrder(ctx, c.state)
		if err != nil {
			return err
		}
		c.state = next
		c.println(receipt.Text)
		if receipt.Failed > 0 {
			c.printf("Warning: %d of %d order lines could not be saved.\n", receipt.Failed, receipt.Items)
		}
		c.println(receipt.Message)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}

func (c *Console) addBurger(ctx context.Context) error {
	if !c.state.AdminMode {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Admin mode is required to change the menu.")
	}
	name, ok := c.prompt("Burger name: ")
	if !ok {
		return nil
	}
	rawPrice, ok := c.prompt("Price: ")
	if !ok {
		return nil
	}
	price, err := catalog.ParsePrice(rawPrice)
	if err != nil {
		return err
	}
	item, err := c.manager.AddCatalogItem(ctx, c.state, name, price)
	if err != nil {
		return err
	}
	c.printf("Added %s at %s.\n", item.Name, c.manager.Formatter().Amount(item.BasePrice))
	return nil
}

func (c *Console) selectBurger(arg string) error {
	if !c.state.HasCustomer() {
		return pkgerrors.New(pkgerrors.CodeNoCustomer, "Set a customer ID first.")
	}
	name, err := c.resolveMenuItem(arg)
	if err != nil {
		return err
	}

	answer, _ := c.prompt("Extra cheese? (y/n): ")
	extra := strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")

	next, _, err := c.manager.SelectItem(c.state, name, extra)
	if err != nil {
		return err
	}
	c.state = next

	c.printf("Add-ons: %s\n", strings.Join(addOnNames(c.manager), ", "))
	for {
		entry, ok := c.prompt("Add-on (blank to finish): ")
		if !ok || strings.TrimSpace(entry) == "" {
			break
		}
		next, _, err := c.manager.AddAddOn(c.state, entry)
		if err != nil {
			c.printError(err)
			continue
		}
		c.state = next
	}
	c.state = c.manager.DoneCustomizing(c.state)

	view, err := c.manager.ViewOrder(c.state)
	if err == nil {
		last := view.Items[len(view.Items)-1]
		c.printf("Added %s. Order total: %s\n", last.Describe(c.manager.Formatter()), view.Total)
	}
	return nil
}

func (c *Console) deleteItem(arg string) error {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "usage: delete <number>")
	}
	item, err := c.manager.ItemAt(c.state, position)
	if err != nil {
		return err
	}
	next, err := c.manager.DeleteOrderItem(c.state, item)
	if err != nil {
		return err
	}
	c.state = next
	c.printf("Removed %s.\n", item.Name)
	return nil
}

func (c *Console) resolveMenuItem(arg string) (string, error) {
	if arg == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "usage: select <number|name>")
	}
	position, err := strconv.Atoi(arg)
	if err != nil {
		item, err := c.manager.FindItem(arg)
		if err != nil {
			return "", err
		}
		return item.Name, nil
	}
	items := c.manager.Catalog()
	if position < 1 || position > len(items) {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu has no item number %d", position))
	}
	return items[position-1].Name, nil
}

func (c *Console) printMenu() {
	items := c.manager.Catalog()
	if len(items) == 0 {
		c.println("The menu is empty.")
		return
	}
	f := c.manager.Formatter()
	for i, item := range items {
		c.printf("%d. %s - %s\n", i+1, item.Name, f.Amount(item.BasePrice))
	}
}

func (c *Console) promptLabel() string {
	switch {
	case c.state.AdminMode:
		return "admin> "
	case c.state.HasCustomer():
		return c.state.ActiveCustomerID + "> "
	default:
		return "> "
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printError(err error) {
	if typed := pkgerrors.As(err); typed != nil {
		c.printf("Error: %s\n", typed.Message())
		return
	}
	c.printf("Error: %v\n", err)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func addOnNames(m *session.Manager) []string {
	addOns := m.AddOns()
	names := make([]string, 0, len(addOns))
	f := m.Formatter()
	for _, a := range addOns {
		names = append(names, fmt.Sprintf("%s (%s)", a.Name, f.Amount(a.Price)))
	}
	return names
}
