package types

import "regexp"

// Lead statuses. A lead moves from New through Contacted to Qualified
// during triage; the set is closed and enforced on save.
const (
	LeadStatusNew       = "New"
	LeadStatusContacted = "Contacted"
	LeadStatusQualified = "Qualified"
)

// validLeadStatuses is the set of recognized lead status values.
var validLeadStatuses = map[string]bool{
	LeadStatusNew:       true,
	LeadStatusContacted: true,
	LeadStatusQualified: true,
}

// LeadStatuses returns the recognized status values in triage order.
func LeadStatuses() []string {
	return []string{LeadStatusNew, LeadStatusContacted, LeadStatusQualified}
}

// emailPattern accepts local@domain.tld shapes: no whitespace or extra
// @ signs, and at least one dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether email satisfies the local@domain.tld
// pattern. "a@b" is rejected, "a@b.com" is accepted.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidLeadStatus reports whether status is one of the recognized
// lead status values.
func ValidLeadStatus(status string) bool {
	return validLeadStatuses[status]
}

// Lead represents a sales lead under triage.
type Lead struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Status  string `json:"status"`
	Score   int    `json:"score"`
}

// RecordID returns the lead's unique identifier.
func (l Lead) RecordID() int { return l.ID }

// Validate checks the invariants a lead must satisfy before a save is
// accepted: a well-formed email, a recognized status, a non-empty name,
// and a non-negative score. Returns a sentinel error from this package
// on the first violation.
func (l Lead) Validate() error {
	if l.Name == "" {
		return ErrEmptyName
	}
	if !ValidateEmail(l.Email) {
		return ErrInvalidEmail
	}
	if !ValidLeadStatus(l.Status) {
		return ErrInvalidStatus
	}
	if l.Score < 0 {
		return ErrNegativeScore
	}
	return nil
}
