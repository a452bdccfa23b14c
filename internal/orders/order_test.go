package orders

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

func newItem(t *testing.T, name string, price int64, addOns ...string) burger.Item {
	t.Helper()
	item := burger.New(catalog.Item{Name: name, BasePrice: decimal.NewFromInt(price)})
	table := burger.DefaultAddOns()
	for _, a := range addOns {
		addOn, err := table.Lookup(a)
		require.NoError(t, err)
		item.AddAddOn(addOn)
	}
	return item
}

func TestTotalIsSumOfItems(t *testing.T) {
	var o Order
	assert.True(t, o.Total().IsZero())

	o.Add(newItem(t, "Cheeseburger", 415, "Cheese Slice"))
	o.Add(newItem(t, "Fish Burger", 485))
	o.Add(newItem(t, "Fish Burger", 485))

	assert.Equal(t, 3, o.Len())
	assert.True(t, o.Total().Equal(decimal.NewFromInt(1410)), "got %s", o.Total())
}

func TestRemove(t *testing.T) {
	var o Order
	withCheese := newItem(t, "Cheeseburger", 415, "Cheese Slice")
	plain := newItem(t, "Cheeseburger", 415)
	o.Add(plain)
	o.Add(withCheese)
	o.Add(plain)

	before := o.Total()
	require.True(t, o.Remove(withCheese))
	assert.Equal(t, 2, o.Len())
	assert.True(t, before.Sub(withCheese.TotalPrice()).Equal(o.Total()))

	assert.False(t, o.Remove(newItem(t, "Veggie Burger", 374)))
	assert.Equal(t, 2, o.Len())

	require.True(t, o.Remove(plain))
	require.True(t, o.Remove(plain))
	assert.True(t, o.IsEmpty())
}

func TestRenderFormat(t *testing.T) {
	var o Order
	o.Add(newItem(t, "Cheeseburger", 415, "Cheese Slice"))

	got := o.Render(money.Default())
	want := "Your Order:\nCheeseburger (₹415.00), Toppings: Cheese Slice\nTotal: ₹440.00 Rupees"
	assert.Equal(t, want, got)
	assert.Equal(t, got, o.Render(money.Default()), "render must be repeatable")
}

func TestRenderEmpty(t *testing.T) {
	var o Order
	assert.Equal(t, "Your Order:\nTotal: ₹0.00 Rupees", o.Render(money.Default()))
}

func TestCloneIsIndependent(t *testing.T) {
	var o Order
	o.Add(newItem(t, "Cheeseburger", 415))

	c := o.Clone()
	c.Last().AddAddOn(burger.AddOn{Name: "Bacon", Price: decimal.NewFromInt(30)})
	c.Add(newItem(t, "Fish Burger", 485))

	assert.Equal(t, 1, o.Len())
	assert.Empty(t, o.Items[0].AddOns)
}

type recordingWriter struct {
	lines  []Line
	failOn map[int]error
	calls  int
}

func (w *recordingWriter) AppendOrderLine(_ context.Context, line Line) error {
	w.calls++
	if err, ok := w.failOn[w.calls]; ok {
		return err
	}
	w.lines = append(w.lines, line)
	return nil
}

func TestPersistWritesEveryLine(t *testing.T) {
	id := int64(1)
	cheese := burger.New(catalog.Item{ID: &id, Name: "Cheeseburger", BasePrice: decimal.NewFromInt(415)})
	cheese.SetExtraCheese(true, decimal.NewFromInt(50))
	cheese.AddAddOn(burger.AddOn{Name: "Lettuce", Price: decimal.NewFromInt(10)})
	cheese.AddAddOn(burger.AddOn{Name: "Bacon", Price: decimal.NewFromInt(30)})

	var o Order
	o.Add(cheese)
	o.Add(newItem(t, "Custom Burger", 300))

	ref := uuid.New()
	w := &recordingWriter{}
	result := o.Persist(context.Background(), w, PersistMeta{OrderRef: ref, CustomerID: "c1"}, nil)

	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Written)
	require.Len(t, w.lines, 2)

	first := w.lines[0]
	assert.Equal(t, ref, first.OrderRef)
	assert.Equal(t, "c1", first.CustomerID)
	require.NotNil(t, first.BurgerID)
	assert.Equal(t, int64(1), *first.BurgerID)
	assert.True(t, first.ExtraCheese)
	assert.Equal(t, "Lettuce, Bacon", first.Toppings)
	assert.True(t, first.LineTotal.Equal(decimal.NewFromInt(505)))
	assert.Nil(t, w.lines[1].BurgerID)
}

func TestPersistContinuesAfterFailure(t *testing.T) {
	var o Order
	o.Add(newItem(t, "Cheeseburger", 415))
	o.Add(newItem(t, "Fish Burger", 485))
	o.Add(newItem(t, "Veggie Burger", 374))

	w := &recordingWriter{failOn: map[int]error{
		1: errors.New("connection reset"),
		3: errors.New("deadlock detected"),
	}}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	result := o.Persist(context.Background(), w, PersistMeta{OrderRef: uuid.New(), CustomerID: "c1"}, logg)

	assert.Equal(t, 3, w.calls)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 2, result.Failed())
	require.Error(t, result.Err)
	assert.True(t, pkgerrors.HasCode(result.Err, pkgerrors.CodeDependency))
	assert.Len(t, multierr.Errors(errors.Unwrap(result.Err)), 2)
}

func TestPersistWithoutWriter(t *testing.T) {
	var o Order
	o.Add(newItem(t, "Cheeseburger", 415))

	result := o.Persist(context.Background(), nil, PersistMeta{}, nil)
	assert.Equal(t, PersistResult{}, result)
}
