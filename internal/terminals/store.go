// Package terminals keeps one session.State per point-of-sale terminal between requests.
package terminals

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/burgershop-backend/internal/orders"
	"github.com/angelmondragon/burgershop-backend/internal/session"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
)

// Store loads and saves terminal sessions. A terminal never seen before loads
// as a fresh state. Saving an idle state drops whatever was stored, since it
// loads back the same.
type Store interface {
	Load(ctx context.Context, terminalID string) (session.State, error)
	Save(ctx context.Context, terminalID string, state session.State) error
}

type MemoryStore struct {
	mu     sync.Mutex
	states map[string]session.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[string]session.State{}}
}

func (m *MemoryStore) Load(_ context.Context, terminalID string) (session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[terminalID]
	if !ok {
		return session.NewState(), nil
	}
	return state.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, terminalID string, state session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idle(state) {
		delete(m.states, terminalID)
		return nil
	}
	m.states[terminalID] = state.Clone()
	return nil
}

// SnapshotClient is the slice of pkg/redis used for snapshots.
type SnapshotClient interface {
	SaveSnapshot(ctx context.Context, terminalID string, payload []byte, ttl time.Duration) error
	LoadSnapshot(ctx context.Context, terminalID string) ([]byte, bool, error)
	DeleteSnapshot(ctx context.Context, terminalID string) error
}

// RedisStore keeps JSON snapshots that expire after ttl of inactivity.
type RedisStore struct {
	client SnapshotClient
	ttl    time.Duration
}

func NewRedisStore(client SnapshotClient, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Load(ctx context.Context, terminalID string) (session.State, error) {
	payload, found, err := r.client.LoadSnapshot(ctx, terminalID)
	if err != nil {
		return session.State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load terminal session")
	}
	if !found {
		return session.NewState(), nil
	}

	var state session.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return session.State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode terminal session")
	}
	if state.Orders == nil {
		state.Orders = map[string]orders.Order{}
	}
	return state, nil
}

func (r *RedisStore) Save(ctx context.Context, terminalID string, state session.State) error {
	if idle(state) {
		if err := r.client.DeleteSnapshot(ctx, terminalID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop terminal session")
		}
		return nil
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode terminal session")
	}
	if err := r.client.SaveSnapshot(ctx, terminalID, payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save terminal session")
	}
	return nil
}

// idle reports whether state is indistinguishable from session.NewState().
func idle(state session.State) bool {
	return !state.HasCustomer() && !state.AdminMode && !state.Customizing && len(state.Orders) == 0
}
