package types

import (
	"testing"
)

func TestNextOpportunityID(t *testing.T) {
	amt := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		existing []Opportunity
		want     int
	}{
		{
			name:     "empty collection starts above the seed floor",
			existing: nil,
			want:     13,
		},
		{
			name: "max below floor still starts above the floor",
			existing: []Opportunity{
				{ID: 3, Name: "Small deal", Amount: amt(5000)},
			},
			want: 13,
		},
		{
			name: "max above floor increments the max",
			existing: []Opportunity{
				{ID: 12, Name: "Seed tail"},
				{ID: 14, Name: "Converted"},
			},
			want: 15,
		},
		{
			name: "insertion order does not matter",
			existing: []Opportunity{
				{ID: 20, Name: "Late"},
				{ID: 13, Name: "Early"},
			},
			want: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextOpportunityID(tt.existing); got != tt.want {
				t.Fatalf("NextOpportunityID = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	amt := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		opp  Opportunity
		want string
	}{
		{"nil amount renders TBD", Opportunity{}, "TBD"},
		{"whole dollars", Opportunity{Amount: amt(950)}, "$950"},
		{"thousands grouped", Opportunity{Amount: amt(45000)}, "$45,000"},
		{"six figures", Opportunity{Amount: amt(125000)}, "$125,000"},
		{"fraction rounded", Opportunity{Amount: amt(1234.6)}, "$1,235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opp.FormatAmount(); got != tt.want {
				t.Fatalf("FormatAmount = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpportunityValidate(t *testing.T) {
	neg := -100.0
	if err := (Opportunity{ID: 1, Name: "Deal", Amount: &neg}).Validate(); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if err := (Opportunity{ID: 1, Name: ""}).Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := (Opportunity{ID: 1, Name: "Deal", Stage: "Totally Custom"}).Validate(); err != nil {
		t.Fatalf("free-form stage must be accepted, got %v", err)
	}
}
