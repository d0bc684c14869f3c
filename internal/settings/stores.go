package settings

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/sellerdesk/internal/kvstore"
	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// migrateSimulationConfig is the versioned transform for the simulation
// config. The current schema is version one, so the transform is the
// identity; the seam exists so a future rename or split has somewhere
// to live.
func migrateSimulationConfig(raw map[string]json.RawMessage) map[string]json.RawMessage {
	return raw
}

// NewSimulationSettings returns the persisted simulation parameter bag:
// error injection toggle and chance, and per-collection delays. Values
// are clamped into their documented ranges on every read.
func NewSimulationSettings(adapter *kvstore.Adapter, logger *zap.Logger) *Bag[types.SimulationConfig] {
	return NewBag(
		adapter,
		types.KeySimulationConfig,
		types.DefaultSimulationConfig,
		types.SimulationConfig.Normalize,
		migrateSimulationConfig,
		logger,
	)
}

// NewLeadFilterSettings returns the persisted leads view state bag:
// status filter and sort token. The transient search term is never part
// of it.
func NewLeadFilterSettings(adapter *kvstore.Adapter, logger *zap.Logger) *Bag[types.LeadFilters] {
	return NewBag(
		adapter,
		types.KeyLeadsFilters,
		types.DefaultLeadFilters,
		types.LeadFilters.Normalize,
		nil,
		logger,
	)
}
