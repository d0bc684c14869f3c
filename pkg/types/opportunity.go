package types

import (
	"fmt"
	"time"
)

// Opportunity stages. The set is used for display grouping only; stage
// is stored as a free-form label and unknown values are accepted.
const (
	StageProspecting   = "Prospecting"
	StageDiscovery     = "Discovery"
	StageQualification = "Qualification"
	StageProposal      = "Proposal"
	StageNegotiation   = "Negotiation"
	StageClosedWon     = "Closed Won"
	StageClosedLost    = "Closed Lost"
)

// ConversionSource tags opportunities created by converting a lead.
const ConversionSource = "lead_conversion"

// OpportunityIDFloor is the highest identifier in the bundled default
// dataset. New opportunity IDs are assigned above it even when the
// loaded collection is empty, so converted opportunities never collide
// with seed records.
const OpportunityIDFloor = 12

// ConversionMeta records where a converted opportunity came from. It is
// persisted with the opportunity but not shown in list views.
type ConversionMeta struct {
	LeadID      int       `json:"lead_id"`
	LeadName    string    `json:"lead_name"`
	ConvertedAt time.Time `json:"converted_at"`
	Source      string    `json:"source"`
}

// Opportunity represents a sales opportunity. Amount is nullable: a nil
// Amount means the value is still to be determined.
type Opportunity struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Stage       string          `json:"stage"`
	Amount      *float64        `json:"amount"`
	AccountName string          `json:"account_name"`
	Conversion  *ConversionMeta `json:"conversion,omitempty"`
}

// RecordID returns the opportunity's unique identifier.
func (o Opportunity) RecordID() int { return o.ID }

// Validate checks the invariants an opportunity must satisfy before a
// save is accepted.
func (o Opportunity) Validate() error {
	if o.Name == "" {
		return ErrEmptyName
	}
	if o.Amount != nil && *o.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// FormatAmount renders the amount as a whole-dollar figure with
// thousands separators, or "TBD" when no amount has been set.
func (o Opportunity) FormatAmount() string {
	if o.Amount == nil {
		return "TBD"
	}
	return "$" + groupThousands(fmt.Sprintf("%.0f", *o.Amount))
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(digits string) string {
	neg := false
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	n := len(digits)
	if n <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}
	var out []byte
	if neg {
		out = append(out, '-')
	}
	head := n % 3
	if head > 0 {
		out = append(out, digits[:head]...)
	}
	for i := head; i < n; i += 3 {
		if len(out) > 0 && !(neg && len(out) == 1) {
			out = append(out, ',')
		}
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

// NextOpportunityID returns the identifier to assign to the next
// opportunity: one past the maximum of the existing IDs and the seed
// floor. IDs are therefore monotonically increasing across the
// collection as long as appends stay synchronous with assignment.
func NextOpportunityID(existing []Opportunity) int {
	maxID := OpportunityIDFloor
	for _, o := range existing {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	return maxID + 1
}
