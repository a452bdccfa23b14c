package catalog

import (
	"context"

	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

// Loader reads catalog rows from durable storage.
type Loader interface {
	LoadCatalog(ctx context.Context) ([]Item, error)
}

// Load reads the catalog once. A storage failure is logged and yields an empty
// catalog; there is no retry.
func Load(ctx context.Context, loader Loader, logg *logger.Logger) *Catalog {
	if loader == nil {
		return FromItems(nil)
	}

	items, err := loader.LoadCatalog(ctx)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "catalog.load_failed", err)
		}
		return FromItems(nil)
	}

	valid := make([]Item, 0, len(items))
	for _, item := range items {
		checked, err := NewItem(item.Name, item.BasePrice)
		if err != nil {
			if logg != nil {
				logg.Warn(logg.WithField(ctx, "burger", item.Name), "catalog.row_skipped")
			}
			continue
		}
		checked.ID = item.ID
		valid = append(valid, checked)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "items", len(valid)), "catalog.loaded")
	}
	return FromItems(valid)
}
