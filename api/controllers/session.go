package controllers

import (
	"net/http"

	"github.com/angelmondragon/burgershop-backend/api/responses"
	"github.com/angelmondragon/burgershop-backend/api/validators"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

type setCustomerRequest struct {
	CustomerID string `json:"customer_id" validate:"max=64"`
}

type adminLoginRequest struct {
	Password string `json:"password" validate:"max=256"`
}

func SessionGet(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Snapshot(r.Context(), terminalID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// SessionSetCustomer makes customer_id the active order on this terminal,
// creating an empty order the first time the id is seen.
func SessionSetCustomer(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req setCustomerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		snap, err := svc.SetCustomer(ctx, terminalID(r), req.CustomerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

func AdminEnter(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req adminLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		snap, err := svc.EnterAdminMode(ctx, terminalID(r), req.Password)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

func AdminExit(svc TerminalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.ExitAdminMode(r.Context(), terminalID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}
