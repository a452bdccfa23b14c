// Package gateway stores the menu and finished orders in a relational database.
package gateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/orders"
	"github.com/angelmondragon/burgershop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

// Repository reads burgers and appends order lines through gorm.
type Repository struct {
	conn *gorm.DB
}

func NewRepository(conn *gorm.DB) (*Repository, error) {
	if conn == nil {
		return nil, errors.New("gorm connection required")
	}
	return &Repository{conn: conn}, nil
}

func (r *Repository) db(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return r.conn
	}
	return r.conn.WithContext(ctx)
}

// EnsureSchema creates the tables with gorm's migrator. Used for sqlite, where
// the goose migrations (written for postgres) are not run.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if err := r.db(ctx).AutoMigrate(&models.Burger{}, &models.OrderLine{}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create schema")
	}
	return nil
}

// SeedIfEmpty inserts the starter menu when the burgers table has no rows.
func (r *Repository) SeedIfEmpty(ctx context.Context, items []catalog.Item) (int, error) {
	var count int64
	if err := r.db(ctx).Model(&models.Burger{}).Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count burgers")
	}
	if count > 0 || len(items) == 0 {
		return 0, nil
	}

	rows := make([]models.Burger, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.Burger{Name: item.Name, Price: item.BasePrice})
	}
	if err := r.db(ctx).Create(&rows).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed burgers")
	}
	return len(rows), nil
}

func (r *Repository) LoadCatalog(ctx context.Context) ([]catalog.Item, error) {
	var rows []models.Burger
	if err := r.db(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load burgers")
	}

	items := make([]catalog.Item, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		items = append(items, catalog.Item{ID: &id, Name: row.Name, BasePrice: row.Price})
	}
	return items, nil
}

func (r *Repository) SaveCatalogItem(ctx context.Context, name string, price decimal.Decimal) (catalog.Item, error) {
	row := models.Burger{Name: name, Price: price}
	if err := r.db(ctx).Create(&row).Error; err != nil {
		return catalog.Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save burger")
	}
	id := row.ID
	return catalog.Item{ID: &id, Name: row.Name, BasePrice: row.Price}, nil
}

func (r *Repository) AppendOrderLine(ctx context.Context, line orders.Line) error {
	row := models.OrderLine{
		OrderRef:    line.OrderRef,
		CustomerID:  line.CustomerID,
		BurgerID:    line.BurgerID,
		ItemName:    line.ItemName,
		ExtraCheese: line.ExtraCheese,
		Toppings:    line.Toppings,
		LineTotal:   line.LineTotal,
	}
	if err := r.db(ctx).Create(&row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order line")
	}
	return nil
}
