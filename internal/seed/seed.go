// Package seed bundles the default datasets the console is seeded from
// on first run (and re-seeded from on reset). The datasets are embedded
// at build time; accessors decode a fresh copy per call so callers can
// never mutate the source.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

//go:embed leads.json
var leadsJSON []byte

//go:embed opportunities.json
var opportunitiesJSON []byte

// Leads returns a fresh copy of the bundled default leads.
func Leads() []types.Lead {
	var leads []types.Lead
	if err := json.Unmarshal(leadsJSON, &leads); err != nil {
		// The dataset is compiled in; a decode failure is a build defect.
		panic(fmt.Sprintf("seed: leads dataset corrupt: %v", err))
	}
	return leads
}

// Opportunities returns a fresh copy of the bundled default
// opportunities. The highest ID in this dataset is
// types.OpportunityIDFloor; conversion assigns IDs above it.
func Opportunities() []types.Opportunity {
	var opps []types.Opportunity
	if err := json.Unmarshal(opportunitiesJSON, &opps); err != nil {
		panic(fmt.Sprintf("seed: opportunities dataset corrupt: %v", err))
	}
	return opps
}
