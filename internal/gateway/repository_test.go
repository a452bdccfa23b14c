package gateway

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/orders"
	"github.com/angelmondragon/burgershop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repo, err := NewRepository(conn)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repo
}

func orderLines(ctx context.Context, repo *Repository, orderRef string) ([]models.OrderLine, error) {
	var rows []models.OrderLine
	err := repo.db(ctx).Where("order_ref = ?", orderRef).Order("id ASC").Find(&rows).Error
	return rows, err
}

func TestNewRepositoryRequiresConnection(t *testing.T) {
	_, err := NewRepository(nil)
	require.Error(t, err)
}

func TestSeedAndLoadCatalog(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seeded, err := repo.SeedIfEmpty(ctx, catalog.NewSeeded().List())
	require.NoError(t, err)
	assert.Equal(t, 6, seeded)

	again, err := repo.SeedIfEmpty(ctx, catalog.NewSeeded().List())
	require.NoError(t, err)
	assert.Zero(t, again)

	items, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, "Cheeseburger", items[0].Name)
	require.NotNil(t, items[0].ID)
	assert.True(t, items[0].BasePrice.Equal(decimal.NewFromInt(415)))
	assert.Equal(t, "Double Patty Burger", items[5].Name)
}

func TestSaveCatalogItemAssignsID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	item, err := repo.SaveCatalogItem(ctx, "Paneer Burger", decimal.RequireFromString("399.50"))
	require.NoError(t, err)
	require.NotNil(t, item.ID)
	assert.Positive(t, *item.ID)

	items, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].BasePrice.Equal(decimal.RequireFromString("399.50")))
}

func TestAppendOrderLine(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved, err := repo.SaveCatalogItem(ctx, "Cheeseburger", decimal.NewFromInt(415))
	require.NoError(t, err)

	ref := uuid.New()
	require.NoError(t, repo.AppendOrderLine(ctx, orders.Line{
		OrderRef:    ref,
		CustomerID:  "c1",
		BurgerID:    saved.ID,
		ItemName:    "Cheeseburger",
		ExtraCheese: true,
		Toppings:    "Lettuce, Bacon",
		LineTotal:   decimal.NewFromInt(505),
	}))
	require.NoError(t, repo.AppendOrderLine(ctx, orders.Line{
		OrderRef:   ref,
		CustomerID: "c1",
		ItemName:   "Custom Burger",
		LineTotal:  decimal.NewFromInt(300),
	}))

	rows, err := orderLines(ctx, repo, ref.String())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, *saved.ID, *rows[0].BurgerID)
	assert.True(t, rows[0].ExtraCheese)
	assert.Equal(t, "Lettuce, Bacon", rows[0].Toppings)
	assert.True(t, rows[0].LineTotal.Equal(decimal.NewFromInt(505)))
	assert.Nil(t, rows[1].BurgerID)
}

func TestLoadCatalogWrapsDatabaseErrors(t *testing.T) {
	repo := newTestRepository(t)
	sqlDB, err := repo.conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))

	loaded := catalog.Load(context.Background(), repo, nil)
	assert.Zero(t, loaded.Len())
}
