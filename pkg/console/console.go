// Package console is the public API of the sellerdesk core: it wires
// the key-value store, the simulation settings, and the lead and
// opportunity collections together, and carries the save and
// lead-to-opportunity conversion flows.
package console

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/sellerdesk/internal/collection"
	"github.com/mesh-intelligence/sellerdesk/internal/kvstore"
	"github.com/mesh-intelligence/sellerdesk/internal/seed"
	"github.com/mesh-intelligence/sellerdesk/internal/settings"
	"github.com/mesh-intelligence/sellerdesk/internal/simnet"
	"github.com/mesh-intelligence/sellerdesk/internal/view"
	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// Notifier receives transient success notifications from the save and
// conversion flows. Rendering is the consumer's concern; the core only
// supplies a title and a human-readable description.
type Notifier interface {
	Success(title, description string)
}

// nopNotifier discards notifications.
type nopNotifier struct{}

func (nopNotifier) Success(string, string) {}

// Config opens a Console.
type Config struct {
	// Store selects and parameterizes the persistence backend.
	Store kvstore.Config
	// Notifier may be nil; notifications are then discarded.
	Notifier Notifier
	// Logger may be nil.
	Logger *zap.Logger
	// Clock returns the current time; nil means time.Now. Injected so
	// conversion timestamps are testable.
	Clock func() time.Time
}

// Console owns one store, one settings bag per schema, and one manager
// per collection. It is the single in-memory owner of both collections
// for this process.
type Console struct {
	store    *kvstore.Adapter
	sim      *settings.Bag[types.SimulationConfig]
	filters  *settings.Bag[types.LeadFilters]
	leads    *collection.Manager[types.Lead]
	opps     *collection.Manager[types.Opportunity]
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// Open builds a Console over the configured store. Collections are not
// loaded yet; call LoadAll (or the individual managers' Load) to
// populate them behind the simulated delay.
func Open(cfg Config) (*Console, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	store, err := kvstore.Open(cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	c := &Console{
		store:    store,
		sim:      settings.NewSimulationSettings(store, logger),
		filters:  settings.NewLeadFilterSettings(store, logger),
		notifier: notifier,
		logger:   logger,
		now:      now,
	}

	c.leads = collection.NewManager(collection.Options[types.Lead]{
		Key:      types.KeyLeadsData,
		Defaults: seed.Leads,
		Store:    store,
		Exec:     simnet.NewExecutor(logger),
		Params:   c.leadParams,
		Logger:   logger,
	})
	c.opps = collection.NewManager(collection.Options[types.Opportunity]{
		Key:      types.KeyOpportunitiesData,
		Defaults: seed.Opportunities,
		Store:    store,
		Exec:     simnet.NewExecutor(logger),
		Params:   c.oppParams,
		Logger:   logger,
	})
	return c, nil
}

// Close releases the store and subscriptions.
func (c *Console) Close() error {
	c.leads.Close()
	c.opps.Close()
	return c.store.Close()
}

// leadParams reads the current simulation settings for lead operations.
func (c *Console) leadParams() simnet.Params {
	cfg := c.sim.Read()
	return simnet.Params{
		Delay:         time.Duration(cfg.LeadsDelayMs) * time.Millisecond,
		SimulateError: cfg.SimulateErrors,
		ErrorChance:   cfg.ErrorChance,
	}
}

// oppParams reads the current simulation settings for opportunity
// operations.
func (c *Console) oppParams() simnet.Params {
	cfg := c.sim.Read()
	return simnet.Params{
		Delay:         time.Duration(cfg.OpportunitiesDelayMs) * time.Millisecond,
		SimulateError: cfg.SimulateErrors,
		ErrorChance:   cfg.ErrorChance,
	}
}

// LoadAll loads both collections. The first error is returned but both
// loads always run.
func (c *Console) LoadAll(ctx context.Context) error {
	leadErr := c.leads.Load(ctx)
	oppErr := c.opps.Load(ctx)
	if leadErr != nil {
		return leadErr
	}
	return oppErr
}

// Leads returns the lead collection manager.
func (c *Console) Leads() *collection.Manager[types.Lead] { return c.leads }

// Opportunities returns the opportunity collection manager.
func (c *Console) Opportunities() *collection.Manager[types.Opportunity] { return c.opps }

// Simulation returns the persisted simulation settings bag.
func (c *Console) Simulation() *settings.Bag[types.SimulationConfig] { return c.sim }

// LeadFilters returns the persisted leads view state bag.
func (c *Console) LeadFilters() *settings.Bag[types.LeadFilters] { return c.filters }

// VisibleLeads derives the displayed lead list from the current
// collection, the persisted filters, and the transient search term.
func (c *Console) VisibleLeads(search string) []types.Lead {
	return view.VisibleLeads(c.leads.Data(), search, c.filters.Read())
}

// VisibleOpportunities derives the displayed opportunity list from the
// current collection and the transient search term.
func (c *Console) VisibleOpportunities(search string) []types.Opportunity {
	return view.FilterOpportunities(c.opps.Data(), search)
}

// SaveLead validates and persists an edited lead. Validation failures
// (malformed email, unknown status) reject the save before any
// persistence happens, so the stored collection is untouched and the
// caller can keep its edit buffer open with inline errors.
func (c *Console) SaveLead(updated types.Lead) error {
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := c.leads.UpdateItem(updated); err != nil {
		return err
	}
	c.notifier.Success("Lead Updated Successfully!",
		fmt.Sprintf("%s's information has been saved.", updated.Name))
	return nil
}

// ResetAllData removes the persisted collections and view filters while
// preserving the simulation config, then clears both in-memory
// collections. The next load re-seeds from the bundled datasets.
func (c *Console) ResetAllData(ctx context.Context) error {
	c.filters.Clear()
	leadErr := c.leads.Reset(ctx)
	oppErr := c.opps.Reset(ctx)
	if leadErr != nil {
		return leadErr
	}
	return oppErr
}

// StoredKeys returns the storage keys currently present.
func (c *Console) StoredKeys() []string {
	return c.store.Keys()
}

// StorageInfo reports per-key and total storage usage against the
// store's capacity ceiling.
type StorageInfo struct {
	TotalBytes  int64
	KeyBytes    map[string]int64
	KeyCount    int
	MaxBytes    int64
	UsedPercent float64
}

// StorageInfo measures the persisted footprint of every stored key.
func (c *Console) StorageInfo() StorageInfo {
	info := StorageInfo{
		KeyBytes: make(map[string]int64),
		MaxBytes: kvstore.MaxStoreBytes,
	}
	for _, key := range c.store.Keys() {
		raw, ok := c.store.Raw(key)
		if !ok {
			continue
		}
		size := int64(len(raw))
		info.KeyBytes[key] = size
		info.TotalBytes += size
	}
	info.KeyCount = len(info.KeyBytes)
	info.UsedPercent = float64(info.TotalBytes) / float64(info.MaxBytes) * 100
	return info
}
