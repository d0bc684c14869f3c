package kvstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarshalFunc and UnmarshalFunc are the pluggable codec of the adapter.
// The defaults are encoding/json.
type (
	MarshalFunc   func(v any) ([]byte, error)
	UnmarshalFunc func(data []byte, v any) error
)

// SubscribeFunc receives the new raw payload when another process
// changes a key. removed is true when the key was deleted; value is nil
// in that case and the subscriber should fall back to its default.
type SubscribeFunc func(value []byte, removed bool)

// Adapter is the typed wrapper over a Medium. Reads fail soft: an
// absent or corrupt value logs a warning and leaves the caller's
// fallback in place, it never propagates an error. Writes report
// success as a boolean.
type Adapter struct {
	medium    Medium
	marshal   MarshalFunc
	unmarshal UnmarshalFunc
	logger    *zap.Logger

	mu     sync.RWMutex
	subs   map[string]map[string]SubscribeFunc // key -> token -> fn
	done   chan struct{}
	closed bool
}

// Option adjusts an Adapter at construction time.
type Option func(*Adapter)

// WithCodec replaces the default JSON codec.
func WithCodec(marshal MarshalFunc, unmarshal UnmarshalFunc) Option {
	return func(a *Adapter) {
		a.marshal = marshal
		a.unmarshal = unmarshal
	}
}

// Open builds the medium selected by cfg and wraps it in an Adapter.
// The logger may be nil.
func Open(cfg Config, logger *zap.Logger, opts ...Option) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		medium Medium
		err    error
	)
	switch cfg.Backend {
	case BackendFile:
		medium, err = NewFileMedium(cfg.DataDir, logger)
	case BackendSQLite:
		medium, err = NewSQLiteMedium(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	return NewAdapter(medium, logger, opts...), nil
}

// NewAdapter wraps an already-open medium. The logger may be nil.
func NewAdapter(medium Medium, logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{
		medium:    medium,
		marshal:   json.Marshal,
		unmarshal: json.Unmarshal,
		logger:    logger,
		subs:      make(map[string]map[string]SubscribeFunc),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.dispatch()
	return a
}

// Get deserializes the value stored under key into out. It returns
// false — leaving out untouched, so the caller keeps its fallback —
// when the key is absent or the stored value cannot be deserialized.
// Failures are logged, never raised.
func (a *Adapter) Get(key string, out any) bool {
	data, ok, err := a.medium.Read(key)
	if err != nil {
		a.logger.Warn("kvstore get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := a.unmarshal(data, out); err != nil {
		a.logger.Warn("kvstore value corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// GetOr returns the value stored under key, or fallback when the key
// is absent or corrupt.
func GetOr[T any](a *Adapter, key string, fallback T) T {
	v := fallback
	if a.Get(key, &v) {
		return v
	}
	return fallback
}

// Set serializes value and stores it under key. Returns false (after
// logging) on serialization or write failure, including quota refusal.
func (a *Adapter) Set(key string, value any) bool {
	data, err := a.marshal(value)
	if err != nil {
		a.logger.Warn("kvstore serialize failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := a.medium.Write(key, data); err != nil {
		a.logger.Warn("kvstore set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Remove deletes the key. Returns false on failure.
func (a *Adapter) Remove(key string) bool {
	if err := a.medium.Delete(key); err != nil {
		a.logger.Warn("kvstore remove failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Raw returns the stored payload without deserializing, for size
// accounting and diagnostics.
func (a *Adapter) Raw(key string) ([]byte, bool) {
	data, ok, err := a.medium.Read(key)
	if err != nil || !ok {
		return nil, false
	}
	return data, true
}

// Keys returns the keys currently present in the store.
func (a *Adapter) Keys() []string {
	keys, err := a.medium.Keys()
	if err != nil {
		a.logger.Warn("kvstore list failed", zap.Error(err))
		return nil
	}
	return keys
}

// Subscribe registers fn for changes to key made by other processes.
// Same-process writes through this adapter do not notify: the writer
// already holds the new value. The returned cancel function removes
// the subscription.
func (a *Adapter) Subscribe(key string, fn SubscribeFunc) (cancel func()) {
	token := uuid.NewString()

	a.mu.Lock()
	if a.subs[key] == nil {
		a.subs[key] = make(map[string]SubscribeFunc)
	}
	a.subs[key][token] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs[key], token)
		a.mu.Unlock()
	}
}

// Close stops dispatching and closes the medium. Idempotent.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	err := a.medium.Close()
	<-a.done
	return err
}

// dispatch fans medium events out to key subscribers.
func (a *Adapter) dispatch() {
	defer close(a.done)
	for ev := range a.medium.Watch() {
		a.mu.RLock()
		fns := make([]SubscribeFunc, 0, len(a.subs[ev.Key]))
		for _, fn := range a.subs[ev.Key] {
			fns = append(fns, fn)
		}
		a.mu.RUnlock()

		for _, fn := range fns {
			fn(ev.Value, ev.Removed)
		}
	}
}
