package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

// Line is one persisted order row.
type Line struct {
	OrderRef    uuid.UUID
	CustomerID  string
	BurgerID    *int64
	ItemName    string
	ExtraCheese bool
	Toppings    string
	LineTotal   decimal.Decimal
}

type LineWriter interface {
	AppendOrderLine(ctx context.Context, line Line) error
}

type PersistMeta struct {
	OrderRef   uuid.UUID
	CustomerID string
}

type PersistResult struct {
	Attempted int
	Written   int
	Err       error
}

func (r PersistResult) Failed() int {
	return r.Attempted - r.Written
}

// Persist writes one line per item. A failed line is logged and the rest are
// still attempted; all failures are combined into Err.
func (o Order) Persist(ctx context.Context, writer LineWriter, meta PersistMeta, logg *logger.Logger) PersistResult {
	if writer == nil {
		return PersistResult{}
	}
	result := PersistResult{Attempted: len(o.Items)}

	var errs error
	for i, item := range o.Items {
		line := Line{
			OrderRef:    meta.OrderRef,
			CustomerID:  meta.CustomerID,
			BurgerID:    item.CatalogID,
			ItemName:    item.Name,
			ExtraCheese: item.ExtraCheese,
			Toppings:    item.ToppingsLine(),
			LineTotal:   item.TotalPrice(),
		}
		if err := writer.AppendOrderLine(ctx, line); err != nil {
			if logg != nil {
				lctx := logg.WithFields(ctx, map[string]any{
					"order_ref": meta.OrderRef.String(),
					"line":      i + 1,
					"burger":    item.Name,
				})
				logg.Error(lctx, "order.line_write_failed", err)
			}
			errs = multierr.Append(errs, fmt.Errorf("line %d (%s): %w", i+1, item.Name, err))
			continue
		}
		result.Written++
	}

	if errs != nil {
		result.Err = pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "failed to save order lines").
			WithDetails(map[string]int{"attempted": result.Attempted, "failed": result.Failed()})
	}
	return result
}
