package controllers

import (
	"net/http"

	"github.com/angelmondragon/burgershop-backend/api/responses"
	"github.com/angelmondragon/burgershop-backend/api/validators"
	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

type selectItemRequest struct {
	ItemName    string `json:"item_name" validate:"required,max=100"`
	ExtraCheese bool   `json:"extra_cheese"`
}

type addOnRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type extraCheeseRequest struct {
	Enabled bool `json:"enabled"`
}

func OrderView(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.ViewOrder(r.Context(), terminalID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// OrderSelectItem adds a fresh copy of a catalog burger to the active order
// and makes it the item being customized.
func OrderSelectItem(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req selectItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		item, err := svc.SelectItem(ctx, terminalID(r), req.ItemName, req.ExtraCheese)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newItemResponse(item, svc.Formatter()))
	}
}

func OrderAddAddOn(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addOnRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeItem(w, r, svc, logg, func() (burger.Item, error) {
			return svc.AddAddOn(ctx, terminalID(r), req.Name)
		})
	}
}

func OrderExtraCheese(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req extraCheeseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeItem(w, r, svc, logg, func() (burger.Item, error) {
			return svc.SetExtraCheese(ctx, terminalID(r), req.Enabled)
		})
	}
}

func OrderDoneCustomizing(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.DoneCustomizing(r.Context(), terminalID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// OrderDeleteItem removes the item at the 1-based {position} of the active order.
func OrderDeleteItem(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		position, err := validators.ParsePosition(r, "position")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		snap, err := svc.DeleteItemAt(ctx, terminalID(r), position)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// OrderFinish closes the active order. Partial persistence failures still
// finish the order; the receipt reports how many lines were written.
func OrderFinish(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		receipt, err := svc.FinishOrder(r.Context(), terminalID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}

func writeItem(w http.ResponseWriter, r *http.Request, svc TerminalService, logg *logger.Logger, op func() (burger.Item, error)) {
	item, err := op()
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, newItemResponse(item, svc.Formatter()))
}
