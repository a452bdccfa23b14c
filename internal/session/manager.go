package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/metrics"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

// Gateway is the optional durable store behind a session.
type Gateway interface {
	orders.LineWriter
	SaveCatalogItem(ctx context.Context, name string, price decimal.Decimal) (catalog.Item, error)
}

type Options struct {
	Catalog         *catalog.Catalog
	AddOns          *burger.AddOnTable
	Authenticator   Authenticator
	Gateway         Gateway
	Formatter       money.Formatter
	CheeseSurcharge decimal.Decimal
	Logger          *logger.Logger
	Metrics         *metrics.OrderMetrics
	NewOrderRef     func() uuid.UUID
}

// Manager applies terminal commands to a State.
type Manager struct {
	catalog   *catalog.Catalog
	addOns    *burger.AddOnTable
	auth      Authenticator
	gateway   Gateway
	formatter money.Formatter
	surcharge decimal.Decimal
	logg      *logger.Logger
	metrics   *metrics.OrderMetrics
	newRef    func() uuid.UUID
}

// OrderView is the read model returned by ViewOrder.
type OrderView struct {
	CustomerID string          `json:"customer_id"`
	Items      []burger.Item   `json:"items"`
	Text       string          `json:"text"`
	Total      string          `json:"total"`
	Amount     decimal.Decimal `json:"amount"`
}

// Receipt summarizes a finished order.
type Receipt struct {
	CustomerID string          `json:"customer_id"`
	OrderRef   uuid.UUID       `json:"order_ref"`
	Text       string          `json:"text"`
	Total      decimal.Decimal `json:"total"`
	Items      int             `json:"items"`
	Persisted  bool            `json:"persisted"`
	Written    int             `json:"written"`
	Failed     int             `json:"failed"`
	Message    string          `json:"message"`
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Catalog == nil {
		return nil, errors.New("catalog required")
	}
	if opts.Authenticator == nil {
		return nil, errors.New("authenticator required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger required")
	}
	if opts.CheeseSurcharge.IsNegative() {
		return nil, errors.New("extra cheese surcharge cannot be negative")
	}
	if opts.AddOns == nil {
		opts.AddOns = burger.DefaultAddOns()
	}
	if opts.Formatter == (money.Formatter{}) {
		opts.Formatter = money.Default()
	}
	if opts.NewOrderRef == nil {
		opts.NewOrderRef = uuid.New
	}
	return &Manager{
		catalog:   opts.Catalog,
		addOns:    opts.AddOns,
		auth:      opts.Authenticator,
		gateway:   opts.Gateway,
		formatter: opts.Formatter,
		surcharge: opts.CheeseSurcharge,
		logg:      opts.Logger,
		metrics:   opts.Metrics,
		newRef:    opts.NewOrderRef,
	}, nil
}

func (m *Manager) Catalog() []catalog.Item {
	return m.catalog.List()
}

// FindItem looks a burger up by name the same way SelectItem does.
func (m *Manager) FindItem(name string) (catalog.Item, error) {
	return m.catalog.Find(name)
}

func (m *Manager) AddOns() []burger.AddOn {
	return m.addOns.List()
}

func (m *Manager) Formatter() money.Formatter {
	return m.formatter
}

// SetCustomer makes id the active customer. An id seen earlier in this state
// resumes its order.
func (m *Manager) SetCustomer(state State, id string) (State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return state, pkgerrors.New(pkgerrors.CodeValidation, msgCustomerRequired).
			WithDetails(map[string]string{"customer_id": "is required"})
	}

	next := state.Clone()
	if _, ok := next.Orders[id]; !ok {
		next.Orders[id] = orders.Order{}
	}
	next.ActiveCustomerID = id
	next.Customizing = false
	return next, nil
}

func (m *Manager) EnterAdminMode(ctx context.Context, state State, password string) (State, error) {
	ok, err := m.auth.Authenticate(ctx, password)
	if err != nil {
		m.logg.Error(ctx, "session.admin_auth_failed", err)
		return state, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msgWrongPassword)
	}
	m.metrics.IncAdminLogin(ok)
	if !ok {
		m.logg.Warn(ctx, "session.admin_denied")
		return state, pkgerrors.New(pkgerrors.CodeUnauthorized, msgWrongPassword)
	}

	next := state.Clone()
	next.AdminMode = true
	m.logg.Info(m.logg.WithAdminMode(ctx, true), "session.admin_entered")
	return next, nil
}

func (m *Manager) ExitAdminMode(state State) State {
	next := state.Clone()
	next.AdminMode = false
	return next
}

// AddCatalogItem validates and adds a burger to the menu. With a gateway the
// row is saved first; a failed save is logged and the burger is kept in memory
// without an id.
func (m *Manager) AddCatalogItem(ctx context.Context, state State, name string, price decimal.Decimal) (catalog.Item, error) {
	if !state.AdminMode {
		return catalog.Item{}, pkgerrors.New(pkgerrors.CodeForbidden, msgAdminRequired)
	}
	item, err := catalog.NewItem(name, price)
	if err != nil {
		return catalog.Item{}, err
	}

	if m.gateway != nil {
		saved, err := m.gateway.SaveCatalogItem(ctx, item.Name, item.BasePrice)
		if err != nil {
			fields := map[string]any{"burger": item.Name}
			if typed := pkgerrors.As(err); typed != nil {
				fields["error_code"] = typed.Code()
			}
			m.logg.Error(m.logg.WithFields(ctx, fields), "session.catalog_save_failed", err)
		} else {
			item.ID = saved.ID
		}
	}

	added, err := m.catalog.Insert(item)
	if err != nil {
		return catalog.Item{}, err
	}
	m.metrics.IncCatalogAdd()
	m.logg.Info(m.logg.WithField(ctx, "burger", added.Name), "session.catalog_item_added")
	return added, nil
}

// SelectItem appends a fresh burger to the active order and opens it for customization.
func (m *Manager) SelectItem(state State, name string, extraCheese bool) (State, burger.Item, error) {
	if !state.HasCustomer() {
		return state, burger.Item{}, errNoActiveCustomer()
	}
	source, err := m.FindItem(name)
	if err != nil {
		return state, burger.Item{}, err
	}

	item := burger.New(source)
	item.SetExtraCheese(extraCheese, m.surcharge)

	next := state.Clone()
	order := next.Orders[next.ActiveCustomerID]
	order.Add(item)
	next.Orders[next.ActiveCustomerID] = order
	next.Customizing = true
	return next, item.Clone(), nil
}

func (m *Manager) AddAddOn(state State, name string) (State, burger.Item, error) {
	if err := m.requireCustomizing(state); err != nil {
		return state, burger.Item{}, err
	}
	found, err := m.addOns.Lookup(name)
	if err != nil {
		return state, burger.Item{}, err
	}
	return m.updateCurrent(state, func(item *burger.Item) {
		item.AddAddOn(found)
	})
}

func (m *Manager) SetExtraCheese(state State, on bool) (State, burger.Item, error) {
	if err := m.requireCustomizing(state); err != nil {
		return state, burger.Item{}, err
	}
	return m.updateCurrent(state, func(item *burger.Item) {
		item.SetExtraCheese(on, m.surcharge)
	})
}

// DoneCustomizing closes the current item. It is what a blank add-on entry means.
func (m *Manager) DoneCustomizing(state State) State {
	next := state.Clone()
	next.Customizing = false
	return next
}

// ItemAt resolves a 1-based position in the active order.
func (m *Manager) ItemAt(state State, position int) (burger.Item, error) {
	if !state.HasCustomer() {
		return burger.Item{}, errNoActiveCustomer()
	}
	order := state.Orders[state.ActiveCustomerID]
	if order.IsEmpty() {
		return burger.Item{}, pkgerrors.New(pkgerrors.CodeStateConflict, msgOrderEmpty)
	}
	if position < 1 || position > order.Len() {
		return burger.Item{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order has no item number %d", position))
	}
	return order.Items[position-1].Clone(), nil
}

func (m *Manager) DeleteOrderItem(state State, item burger.Item) (State, error) {
	if !state.HasCustomer() {
		return state, errNoActiveCustomer()
	}
	if state.Orders[state.ActiveCustomerID].IsEmpty() {
		return state, pkgerrors.New(pkgerrors.CodeStateConflict, msgOrderEmpty)
	}

	next := state.Clone()
	order := next.Orders[next.ActiveCustomerID]
	if !order.Remove(item) {
		return state, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s is not on this order", item.Name))
	}
	next.Orders[next.ActiveCustomerID] = order
	next.Customizing = false
	return next, nil
}

func (m *Manager) ViewOrder(state State) (OrderView, error) {
	if !state.HasCustomer() {
		return OrderView{}, errNoActiveCustomer()
	}
	order := state.ActiveOrder()
	total := order.Total()
	return OrderView{
		CustomerID: state.ActiveCustomerID,
		Items:      order.Items,
		Text:       order.Render(m.formatter),
		Total:      m.formatter.Total(total),
		Amount:     total,
	}, nil
}

// FinishOrder renders the receipt, saves the order when a gateway is
// configured and forgets the customer. The order is dropped even if some lines
// failed to save.
func (m *Manager) FinishOrder(ctx context.Context, state State) (State, Receipt, error) {
	if !state.HasCustomer() {
		return state, Receipt{}, errNoActiveCustomer()
	}

	customerID := state.ActiveCustomerID
	order := state.ActiveOrder()
	ctx = m.logg.WithCustomerID(ctx, customerID)

	receipt := Receipt{
		CustomerID: customerID,
		OrderRef:   m.newRef(),
		Text:       order.Render(m.formatter),
		Total:      order.Total(),
		Items:      order.Len(),
		Message:    fmt.Sprintf("Order for customer ID %s has been finished.", customerID),
	}

	if m.gateway != nil {
		result := order.Persist(ctx, m.gateway, orders.PersistMeta{OrderRef: receipt.OrderRef, CustomerID: customerID}, m.logg)
		receipt.Written = result.Written
		receipt.Failed = result.Failed()
		receipt.Persisted = result.Err == nil
		m.metrics.AddLineWrites(result.Written, result.Failed())
		if result.Err != nil {
			m.logg.Error(m.logg.WithFields(ctx, pkgerrors.Dump(result.Err).Fields()), "session.order_persist_partial", result.Err)
		}
	}

	next := state.Clone()
	delete(next.Orders, customerID)
	next.ActiveCustomerID = ""
	next.Customizing = false

	m.metrics.ObserveFinished(receipt.Total)
	m.logg.Info(m.logg.WithField(ctx, "order_ref", receipt.OrderRef.String()), "session.order_finished")
	return next, receipt, nil
}

func (m *Manager) requireCustomizing(state State) error {
	if !state.HasCustomer() {
		return errNoActiveCustomer()
	}
	if !state.Customizing || state.Orders[state.ActiveCustomerID].IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, msgNotCustomizing)
	}
	return nil
}

func (m *Manager) updateCurrent(state State, apply func(item *burger.Item)) (State, burger.Item, error) {
	next := state.Clone()
	order := next.Orders[next.ActiveCustomerID]
	current := order.Last()
	apply(current)
	next.Orders[next.ActiveCustomerID] = order
	return next, current.Clone(), nil
}
