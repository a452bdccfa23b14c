package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

// ParsePosition reads a 1-based list position from the named route parameter.
func ParsePosition(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "position must be a positive number").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	return value, nil
}
