package console

import (
	"fmt"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// ConvertLead turns the lead with the given ID into a new opportunity.
// The opportunity gets the next sequential ID (one past the maximum of
// the loaded collection and the seed floor), starts in the Prospecting
// stage with no amount, uses the lead's company as the account name,
// and carries conversion metadata pointing back at the lead.
//
// The ID is computed and the record appended synchronously, so
// converting the same or another lead again before any reload yields
// the next consecutive ID.
func (c *Console) ConvertLead(leadID int) (types.Opportunity, error) {
	lead, err := c.leads.Get(leadID)
	if err != nil {
		return types.Opportunity{}, fmt.Errorf("converting lead %d: %w", leadID, err)
	}

	opp := types.Opportunity{
		ID:          types.NextOpportunityID(c.opps.Data()),
		Name:        fmt.Sprintf("%s - %s", lead.Name, lead.Company),
		Stage:       types.StageProspecting,
		Amount:      nil,
		AccountName: lead.Company,
		Conversion: &types.ConversionMeta{
			LeadID:      lead.ID,
			LeadName:    lead.Name,
			ConvertedAt: c.now(),
			Source:      types.ConversionSource,
		},
	}
	c.opps.AddItem(opp)

	c.notifier.Success("Lead Converted Successfully!",
		fmt.Sprintf("%s from %s has been converted to an opportunity.", lead.Name, lead.Company))
	return opp, nil
}
