package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/angelmondragon/burgershop-backend/api/responses"
	"github.com/angelmondragon/burgershop-backend/api/validators"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

type addCatalogItemRequest struct {
	Name      string          `json:"name" validate:"max=100"`
	BasePrice json.RawMessage `json:"base_price" validate:"required"`
}

type catalogEntry struct {
	catalog.Item
	Position int    `json:"position"`
	Price    string `json:"price"`
}

// CatalogList returns the menu in display order with 1-based positions.
func CatalogList(svc TerminalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := svc.Formatter()
		items := svc.Catalog()
		out := make([]catalogEntry, 0, len(items))
		for i, item := range items {
			out = append(out, catalogEntry{Item: item, Position: i + 1, Price: f.Amount(item.BasePrice)})
		}
		responses.WriteSuccess(w, out)
	}
}

// CatalogAdd appends a burger to the menu. Only a terminal in admin mode may call it.
func CatalogAdd(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addCatalogItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		price, err := catalog.ParsePrice(strings.Trim(string(req.BasePrice), `"`))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.AddCatalogItem(ctx, terminalID(r), req.Name, price)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, catalogEntry{
			Item:     item,
			Position: len(svc.Catalog()),
			Price:    svc.Formatter().Amount(item.BasePrice),
		})
	}
}

func AddOnList(svc TerminalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.AddOns())
	}
}
