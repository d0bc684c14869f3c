package types

import "testing"

func TestSimulationConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   SimulationConfig
		want SimulationConfig
	}{
		{
			name: "defaults pass through unchanged",
			in:   DefaultSimulationConfig(),
			want: DefaultSimulationConfig(),
		},
		{
			name: "error chance clamped to upper bound",
			in:   SimulationConfig{ErrorChance: 1.5, LeadsDelayMs: 100, OpportunitiesDelayMs: 100},
			want: SimulationConfig{ErrorChance: 1, LeadsDelayMs: 100, OpportunitiesDelayMs: 100},
		},
		{
			name: "negative values clamped to zero",
			in:   SimulationConfig{ErrorChance: -0.2, LeadsDelayMs: -5, OpportunitiesDelayMs: -1},
			want: SimulationConfig{ErrorChance: 0, LeadsDelayMs: 0, OpportunitiesDelayMs: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Fatalf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLeadFiltersNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   LeadFilters
		want LeadFilters
	}{
		{
			name: "empty filters are valid",
			in:   DefaultLeadFilters(),
			want: DefaultLeadFilters(),
		},
		{
			name: "valid status and sort kept",
			in:   LeadFilters{StatusFilter: LeadStatusQualified, SortBy: SortScoreDesc},
			want: LeadFilters{StatusFilter: LeadStatusQualified, SortBy: SortScoreDesc},
		},
		{
			name: "unknown status dropped",
			in:   LeadFilters{StatusFilter: "Frozen"},
			want: LeadFilters{},
		},
		{
			name: "unknown sort token dropped",
			in:   LeadFilters{SortBy: "name-asc"},
			want: LeadFilters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Fatalf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
