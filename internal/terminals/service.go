package terminals

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
	"github.com/angelmondragon/burgershop-backend/pkg/money"
)

// Snapshot is the externally visible part of a terminal session.
type Snapshot struct {
	TerminalID  string             `json:"terminal_id"`
	CustomerID  string             `json:"customer_id,omitempty"`
	AdminMode   bool               `json:"admin_mode"`
	Customizing bool               `json:"customizing"`
	Order       *session.OrderView `json:"order,omitempty"`
}

// Service serializes commands per terminal: load the state, apply one
// session.Manager operation, save the result. Failed commands save nothing.
type Service struct {
	manager *session.Manager
	store   Store
	logg    *logger.Logger

	mu    sync.Mutex
	locks map[string]*terminalLock
}

// terminalLock is dropped from Service.locks once no command holds or waits on it.
type terminalLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(manager *session.Manager, store Store, logg *logger.Logger) (*Service, error) {
	if manager == nil {
		return nil, errors.New("session manager required")
	}
	if store == nil {
		return nil, errors.New("terminal store required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Service{
		manager: manager,
		store:   store,
		logg:    logg,
		locks:   map[string]*terminalLock{},
	}, nil
}

func (s *Service) Catalog() []catalog.Item {
	return s.manager.Catalog()
}

func (s *Service) AddOns() []burger.AddOn {
	return s.manager.AddOns()
}

func (s *Service) Formatter() money.Formatter {
	return s.manager.Formatter()
}

func (s *Service) Snapshot(ctx context.Context, terminalID string) (Snapshot, error) {
	var snap Snapshot
	err := s.read(ctx, terminalID, func(state session.State) error {
		snap = s.snapshot(terminalID, state)
		return nil
	})
	return snap, err
}

func (s *Service) SetCustomer(ctx context.Context, terminalID, customerID string) (Snapshot, error) {
	return s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		return s.manager.SetCustomer(state, customerID)
	})
}

func (s *Service) EnterAdminMode(ctx context.Context, terminalID, password string) (Snapshot, error) {
	return s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		return s.manager.EnterAdminMode(ctx, state, password)
	})
}

func (s *Service) ExitAdminMode(ctx context.Context, terminalID string) (Snapshot, error) {
	return s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		if state.AdminMode {
			s.logg.Info(s.logg.WithAdminMode(s.logg.WithTerminalID(ctx, normalizeID(terminalID)), false), "terminal.admin_exited")
		}
		return s.manager.ExitAdminMode(state), nil
	})
}

func (s *Service) AddCatalogItem(ctx context.Context, terminalID, name string, price decimal.Decimal) (catalog.Item, error) {
	var added catalog.Item
	err := s.read(ctx, terminalID, func(state session.State) error {
		var err error
		added, err = s.manager.AddCatalogItem(ctx, state, name, price)
		return err
	})
	return added, err
}

func (s *Service) SelectItem(ctx context.Context, terminalID, name string, extraCheese bool) (burger.Item, error) {
	return s.mutateItem(ctx, terminalID, func(state session.State) (session.State, burger.Item, error) {
		return s.manager.SelectItem(state, name, extraCheese)
	})
}

func (s *Service) AddAddOn(ctx context.Context, terminalID, name string) (burger.Item, error) {
	return s.mutateItem(ctx, terminalID, func(state session.State) (session.State, burger.Item, error) {
		return s.manager.AddAddOn(state, name)
	})
}

func (s *Service) SetExtraCheese(ctx context.Context, terminalID string, on bool) (burger.Item, error) {
	return s.mutateItem(ctx, terminalID, func(state session.State) (session.State, burger.Item, error) {
		return s.manager.SetExtraCheese(state, on)
	})
}

func (s *Service) DoneCustomizing(ctx context.Context, terminalID string) (Snapshot, error) {
	return s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		return s.manager.DoneCustomizing(state), nil
	})
}

// DeleteItemAt removes the item at a 1-based position of the active order.
func (s *Service) DeleteItemAt(ctx context.Context, terminalID string, position int) (Snapshot, error) {
	return s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		item, err := s.manager.ItemAt(state, position)
		if err != nil {
			return state, err
		}
		return s.manager.DeleteOrderItem(state, item)
	})
}

func (s *Service) ViewOrder(ctx context.Context, terminalID string) (session.OrderView, error) {
	var view session.OrderView
	err := s.read(ctx, terminalID, func(state session.State) error {
		var err error
		view, err = s.manager.ViewOrder(state)
		return err
	})
	return view, err
}

func (s *Service) FinishOrder(ctx context.Context, terminalID string) (session.Receipt, error) {
	var receipt session.Receipt
	_, err := s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		next, r, err := s.manager.FinishOrder(ctx, state)
		receipt = r
		return next, err
	})
	return receipt, err
}

func (s *Service) mutateItem(ctx context.Context, terminalID string, op func(session.State) (session.State, burger.Item, error)) (burger.Item, error) {
	var item burger.Item
	_, err := s.mutate(ctx, terminalID, func(state session.State) (session.State, error) {
		next, it, err := op(state)
		item = it
		return next, err
	})
	return item, err
}

func (s *Service) mutate(ctx context.Context, terminalID string, op func(session.State) (session.State, error)) (Snapshot, error) {
	terminalID = normalizeID(terminalID)
	unlock := s.lock(terminalID)
	defer unlock()

	ctx = s.logg.WithTerminalID(ctx, terminalID)
	state, err := s.store.Load(ctx, terminalID)
	if err != nil {
		return Snapshot{}, err
	}
	next, err := op(state)
	if err != nil {
		return Snapshot{}, err
	}
	if err := s.store.Save(ctx, terminalID, next); err != nil {
		s.logg.Error(ctx, "terminal.save_failed", err)
		return Snapshot{}, err
	}
	return s.snapshot(terminalID, next), nil
}

func (s *Service) read(ctx context.Context, terminalID string, op func(session.State) error) error {
	terminalID = normalizeID(terminalID)
	unlock := s.lock(terminalID)
	defer unlock()

	state, err := s.store.Load(s.logg.WithTerminalID(ctx, terminalID), terminalID)
	if err != nil {
		return err
	}
	return op(state)
}

func (s *Service) snapshot(terminalID string, state session.State) Snapshot {
	snap := Snapshot{
		TerminalID:  terminalID,
		CustomerID:  state.ActiveCustomerID,
		AdminMode:   state.AdminMode,
		Customizing: state.Customizing,
	}
	if view, err := s.manager.ViewOrder(state); err == nil {
		snap.Order = &view
	}
	return snap
}

func (s *Service) lock(terminalID string) func() {
	s.mu.Lock()
	l, ok := s.locks[terminalID]
	if !ok {
		l = &terminalLock{}
		s.locks[terminalID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, terminalID)
		}
		s.mu.Unlock()
	}
}

func normalizeID(terminalID string) string {
	return strings.TrimSpace(terminalID)
}
