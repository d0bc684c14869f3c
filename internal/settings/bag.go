// Package settings provides schema-validated persisted state bags for
// the console's simulation parameters and view filters. Reads are
// total: whatever is persisted — missing, corrupt, stale-shaped, or
// carrying unknown keys — a Read always returns a fully-shaped value.
package settings

import (
	"encoding/json"
	"reflect"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/sellerdesk/internal/kvstore"
)

// MigrateFunc adapts an older persisted shape to the current schema
// before validation. It receives and returns the raw key set; the
// default is the identity transform, kept as an explicit seam for
// future schema changes.
type MigrateFunc func(raw map[string]json.RawMessage) map[string]json.RawMessage

// Bag is a typed, validated, persisted settings object. The schema is
// the JSON encoding of T's default value: keys absent from a persisted
// value are backfilled from the default, keys unknown to the schema are
// dropped.
type Bag[T any] struct {
	key       string
	defaults  func() T
	adapter   *kvstore.Adapter
	migrate   MigrateFunc
	normalize func(T) T
	logger    *zap.Logger
}

// NewBag builds a settings bag persisted under key. defaults supplies
// the schema and fallback values; normalize (may be nil) clamps decoded
// values into their domains; migrate (may be nil) is the versioned
// shape transform.
func NewBag[T any](adapter *kvstore.Adapter, key string, defaults func() T, normalize func(T) T, migrate MigrateFunc, logger *zap.Logger) *Bag[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalize == nil {
		normalize = func(v T) T { return v }
	}
	if migrate == nil {
		migrate = func(raw map[string]json.RawMessage) map[string]json.RawMessage { return raw }
	}
	return &Bag[T]{
		key:       key,
		defaults:  defaults,
		adapter:   adapter,
		migrate:   migrate,
		normalize: normalize,
		logger:    logger,
	}
}

// Read returns the validated persisted value. It never fails and never
// returns a partially-shaped object: the result carries exactly the
// schema's keys, with defaults backfilled for anything missing.
func (b *Bag[T]) Read() T {
	defaults := b.defaults()

	var raw map[string]json.RawMessage
	if !b.adapter.Get(b.key, &raw) || raw == nil {
		return b.normalize(defaults)
	}

	raw = b.migrate(raw)

	schema, err := keySet(defaults)
	if err != nil {
		b.logger.Warn("settings schema not encodable", zap.String("key", b.key), zap.Error(err))
		return b.normalize(defaults)
	}

	// Keep known keys only, then backfill the missing ones.
	merged := make(map[string]json.RawMessage, len(schema))
	for k, dv := range schema {
		if pv, ok := raw[k]; ok {
			merged[k] = pv
		} else {
			merged[k] = dv
		}
	}

	out := defaults
	buf, err := json.Marshal(merged)
	if err == nil {
		err = json.Unmarshal(buf, &out)
	}
	if err != nil {
		// A type-mismatched persisted value degrades to defaults.
		b.logger.Warn("settings value rejected", zap.String("key", b.key), zap.Error(err))
		return b.normalize(defaults)
	}
	return b.normalize(out)
}

// Update applies mutate to the current validated value and persists the
// result. Returns false when the write fails.
func (b *Bag[T]) Update(mutate func(*T)) bool {
	cfg := b.Read()
	mutate(&cfg)
	cfg = b.normalize(cfg)
	return b.adapter.Set(b.key, cfg)
}

// Reset persists the literal default value.
func (b *Bag[T]) Reset() bool {
	return b.adapter.Set(b.key, b.defaults())
}

// Clear removes the persisted value; the next Read returns defaults.
func (b *Bag[T]) Clear() bool {
	return b.adapter.Remove(b.key)
}

// IsDefault reports whether the current validated value equals the
// default value.
func (b *Bag[T]) IsDefault() bool {
	return reflect.DeepEqual(b.Read(), b.defaults())
}

// keySet returns the JSON key set of v's encoding, carrying each key's
// default-encoded value for backfill.
func keySet[T any](v T) (map[string]json.RawMessage, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(buf, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
