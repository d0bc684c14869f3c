// Package collection makes one entity collection behave like a small
// local backend: seeded from a bundled default dataset, persisted as a
// whole on every mutation, and loaded/refreshed/reset behind simulated
// network latency and failure injection.
package collection

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/sellerdesk/internal/kvstore"
	"github.com/mesh-intelligence/sellerdesk/internal/simnet"
	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// Record is the capability a managed entity must provide: a unique,
// stable integer identifier.
type Record interface {
	RecordID() int
}

// ParamsFunc supplies the simulation parameters for the next
// latency-simulated operation, read fresh on every call so config
// changes take effect without rebuilding the manager.
type ParamsFunc func() simnet.Params

// Options configures a Manager.
type Options[T Record] struct {
	// Key is the storage key the collection persists under.
	Key string
	// Defaults returns the bundled dataset used to seed an empty store.
	Defaults func() []T
	// Store is the persistence adapter. The manager is the single
	// in-memory owner of the collection; the store owns durability.
	Store *kvstore.Adapter
	// Exec simulates latency and failures on load, refresh, and reset.
	Exec *simnet.Executor
	// Params supplies delay and error-injection settings per operation.
	Params ParamsFunc
	// Logger may be nil.
	Logger *zap.Logger
}

// Manager owns the canonical in-memory copy of one entity collection.
// Load, Refresh, and Reset suspend for the simulated delay; update,
// add, and remove are synchronous and complete before returning.
type Manager[T Record] struct {
	key      string
	defaults func() []T
	store    *kvstore.Adapter
	exec     *simnet.Executor
	params   ParamsFunc
	logger   *zap.Logger

	mu   sync.RWMutex
	data []T
	subs map[int]func([]T)
	next int

	unsubscribe func()
}

// NewManager builds a manager for one collection. It also subscribes to
// store changes made by other processes, republishing the externally
// written value so every process converges on the same collection.
func NewManager[T Record](opts Options[T]) *Manager[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager[T]{
		key:      opts.Key,
		defaults: opts.Defaults,
		store:    opts.Store,
		exec:     opts.Exec,
		params:   opts.Params,
		logger:   logger,
		subs:     make(map[int]func([]T)),
	}
	m.unsubscribe = m.store.Subscribe(m.key, m.onExternalChange)
	return m
}

// Close cancels the external change subscription.
func (m *Manager[T]) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Load publishes the persisted collection as current state after the
// simulated delay, seeding the store from the default dataset when
// nothing is persisted yet. On an injected failure the data stays as it
// was (empty on first load) and Err carries the message.
func (m *Manager[T]) Load(ctx context.Context) error {
	return m.exec.Run(ctx, m.params(), func() error {
		stored := m.readStored()
		if len(stored) == 0 {
			seeded := m.defaults()
			m.persist(seeded)
			m.publish(seeded)
			m.logger.Debug("collection seeded",
				zap.String("key", m.key), zap.Int("records", len(seeded)))
			return nil
		}
		m.publish(stored)
		return nil
	})
}

// Refresh re-publishes the persisted collection after the simulated
// delay, simulating a reload from a server. An empty persisted
// collection falls back to the seed path.
func (m *Manager[T]) Refresh(ctx context.Context) error {
	return m.Load(ctx)
}

// Reset clears both the persisted and in-memory collection, then after
// the simulated delay re-seeds both from the default dataset. Between
// the clear and the re-seed consumers observe an empty collection; that
// transient state is intentional and visible.
func (m *Manager[T]) Reset(ctx context.Context) error {
	m.store.Remove(m.key)
	m.publish([]T{})

	return m.exec.Run(ctx, m.params(), func() error {
		seeded := m.defaults()
		m.persist(seeded)
		m.publish(seeded)
		return nil
	})
}

// UpdateItem replaces the record whose ID matches item, persists the
// whole collection, and updates in-memory state synchronously — no
// simulated delay. Returns types.ErrNotFound when no record has that
// ID; the collection is untouched in that case.
func (m *Manager[T]) UpdateItem(item T) error {
	m.mu.Lock()
	idx := -1
	for i, r := range m.data {
		if r.RecordID() == item.RecordID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return types.ErrNotFound
	}
	next := make([]T, len(m.data))
	copy(next, m.data)
	next[idx] = item
	m.data = next
	m.mu.Unlock()

	m.persist(next)
	m.notify(next)
	return nil
}

// AddItem appends item to the end of the collection and persists. The
// caller is responsible for supplying a unique ID; collisions are not
// checked. Synchronous: by the time AddItem returns, Data includes the
// record, which keeps compute-ID-then-append safe against double
// conversion.
func (m *Manager[T]) AddItem(item T) {
	m.mu.Lock()
	next := make([]T, len(m.data)+1)
	copy(next, m.data)
	next[len(m.data)] = item
	m.data = next
	m.mu.Unlock()

	m.persist(next)
	m.notify(next)
}

// RemoveItem filters out every record with the given ID and persists.
// Removing an absent ID is a no-op (but still rewrites the store).
func (m *Manager[T]) RemoveItem(id int) {
	m.mu.Lock()
	next := make([]T, 0, len(m.data))
	for _, r := range m.data {
		if r.RecordID() != id {
			next = append(next, r)
		}
	}
	m.data = next
	m.mu.Unlock()

	m.persist(next)
	m.notify(next)
}

// Data returns a copy of the current collection.
func (m *Manager[T]) Data() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// Get returns the record with the given ID.
func (m *Manager[T]) Get(id int) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.data {
		if r.RecordID() == id {
			return r, nil
		}
	}
	var zero T
	return zero, types.ErrNotFound
}

// Loading reports whether a latency-simulated operation is in flight.
func (m *Manager[T]) Loading() bool { return m.exec.Loading() }

// Err returns the user-visible message of the last failed operation.
func (m *Manager[T]) Err() string { return m.exec.Err() }

// ClearError discards the current error message.
func (m *Manager[T]) ClearError() { m.exec.ClearError() }

// OnChange registers fn to run with the new collection after every
// published change. The returned cancel function removes it.
func (m *Manager[T]) OnChange(fn func([]T)) (cancel func()) {
	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// readStored returns the persisted collection, or nil when absent or
// unreadable.
func (m *Manager[T]) readStored() []T {
	var stored []T
	m.store.Get(m.key, &stored)
	return stored
}

// persist writes the whole collection back to the store as one value.
// A refused write (quota, serialization) is logged; in-memory state is
// already updated and remains the source of truth for this process.
func (m *Manager[T]) persist(data []T) {
	if !m.store.Set(m.key, data) {
		m.logger.Warn("collection persist failed", zap.String("key", m.key))
	}
}

// publish swaps in data as the current collection and notifies.
func (m *Manager[T]) publish(data []T) {
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	m.notify(data)
}

// notify runs the change subscribers with the new collection.
func (m *Manager[T]) notify(data []T) {
	m.mu.RLock()
	fns := make([]func([]T), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		out := make([]T, len(data))
		copy(out, data)
		fn(out)
	}
}

// onExternalChange handles a store change made by another process.
func (m *Manager[T]) onExternalChange(value []byte, removed bool) {
	if removed {
		m.logger.Debug("collection removed externally", zap.String("key", m.key))
		m.publish([]T{})
		return
	}
	var data []T
	if err := json.Unmarshal(value, &data); err != nil {
		m.logger.Warn("external collection value corrupt",
			zap.String("key", m.key), zap.Error(err))
		return
	}
	m.publish(data)
}
