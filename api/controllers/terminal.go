package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/api/middleware"
	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	"github.com/angelmondragon/burgershop-backend/internal/terminals"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

// TerminalService is the counter workflow the HTTP handlers drive. Every call
// is scoped to the terminal resolved by middleware.Terminal.
type TerminalService interface {
	Catalog() []catalog.Item
	AddOns() []burger.AddOn
	Formatter() money.Formatter
	Snapshot(ctx context.Context, terminalID string) (terminals.Snapshot, error)
	SetCustomer(ctx context.Context, terminalID, customerID string) (terminals.Snapshot, error)
	EnterAdminMode(ctx context.Context, terminalID, password string) (terminals.Snapshot, error)
	ExitAdminMode(ctx context.Context, terminalID string) (terminals.Snapshot, error)
	AddCatalogItem(ctx context.Context, terminalID, name string, price decimal.Decimal) (catalog.Item, error)
	SelectItem(ctx context.Context, terminalID, name string, extraCheese bool) (burger.Item, error)
	AddAddOn(ctx context.Context, terminalID, name string) (burger.Item, error)
	SetExtraCheese(ctx context.Context, terminalID string, on bool) (burger.Item, error)
	DoneCustomizing(ctx context.Context, terminalID string) (terminals.Snapshot, error)
	DeleteItemAt(ctx context.Context, terminalID string, position int) (terminals.Snapshot, error)
	ViewOrder(ctx context.Context, terminalID string) (session.OrderView, error)
	FinishOrder(ctx context.Context, terminalID string) (session.Receipt, error)
}

type itemResponse struct {
	burger.Item
	Description string `json:"description"`
	TotalPrice  string `json:"total_price"`
}

func newItemResponse(item burger.Item, f money.Formatter) itemResponse {
	return itemResponse{
		Item:        item,
		Description: item.Describe(f),
		TotalPrice:  f.Amount(item.TotalPrice()),
	}
}

func terminalID(r *http.Request) string {
	return middleware.TerminalIDFromContext(r.Context())
}
