package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/burgershop-backend/api/responses"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

const (
	TerminalIDHeader = "X-Terminal-Id"

	maxTerminalIDLen = 64
)

// Terminal resolves which counter terminal a request belongs to. Requests
// without the header share defaultID.
func Terminal(defaultID string, logg *logger.Logger) func(http.Handler) http.Handler {
	defaultID = strings.TrimSpace(defaultID)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			terminalID := strings.TrimSpace(r.Header.Get(TerminalIDHeader))
			if terminalID == "" {
				terminalID = defaultID
			}
			if terminalID == "" || len(terminalID) > maxTerminalIDLen || strings.ContainsAny(terminalID, ": \t") {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid terminal id").
					WithDetails(map[string]any{"header": TerminalIDHeader}))
				return
			}

			ctx = WithTerminalID(ctx, terminalID)
			if logg != nil {
				ctx = logg.WithTerminalID(ctx, terminalID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
