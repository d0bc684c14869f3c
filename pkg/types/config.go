package types

// Storage keys. Each key is an independent stored value; there is no
// cross-key transactionality.
const (
	KeySimulationConfig  = "simulation-config"
	KeyLeadsFilters      = "leads-filters"
	KeyLeadsData         = "leads-data"
	KeyOpportunitiesData = "opportunities-data"
)

// Sort tokens accepted by the derived view builder. Any other token,
// including the empty string, leaves the filtered order unchanged.
const (
	SortScoreDesc = "score-desc"
)

// SimulationConfig holds the parameters of the simulated backend:
// artificial latency per collection and probabilistic failure
// injection. It is persisted under KeySimulationConfig and validated
// with default backfill on every read.
type SimulationConfig struct {
	SimulateErrors       bool    `json:"simulateErrors"`
	ErrorChance          float64 `json:"errorChance"`
	LeadsDelayMs         int     `json:"leadsDelay"`
	OpportunitiesDelayMs int     `json:"opportunitiesDelay"`
}

// DefaultSimulationConfig returns the configuration used when nothing
// valid is persisted: errors off, 10% chance when enabled, 1.5s
// simulated latency for both collections.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		SimulateErrors:       false,
		ErrorChance:          0.1,
		LeadsDelayMs:         1500,
		OpportunitiesDelayMs: 1500,
	}
}

// Normalize clamps out-of-range values into their documented domains:
// ErrorChance into [0,1] and delays to non-negative milliseconds.
func (c SimulationConfig) Normalize() SimulationConfig {
	if c.ErrorChance < 0 {
		c.ErrorChance = 0
	}
	if c.ErrorChance > 1 {
		c.ErrorChance = 1
	}
	if c.LeadsDelayMs < 0 {
		c.LeadsDelayMs = 0
	}
	if c.OpportunitiesDelayMs < 0 {
		c.OpportunitiesDelayMs = 0
	}
	return c
}

// LeadFilters holds the persisted view state for the leads list: an
// exact status filter and a sort token, both empty by default. The
// search term is transient and never persisted.
type LeadFilters struct {
	StatusFilter string `json:"statusFilter"`
	SortBy       string `json:"sortBy"`
}

// DefaultLeadFilters returns the unfiltered, unsorted view state.
func DefaultLeadFilters() LeadFilters {
	return LeadFilters{StatusFilter: "", SortBy: ""}
}

// Normalize drops filter values outside their enumerated domains: an
// unrecognized status filter or sort token falls back to empty.
func (f LeadFilters) Normalize() LeadFilters {
	if f.StatusFilter != "" && !ValidLeadStatus(f.StatusFilter) {
		f.StatusFilter = ""
	}
	if f.SortBy != "" && f.SortBy != SortScoreDesc {
		f.SortBy = ""
	}
	return f
}
