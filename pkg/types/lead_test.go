package types

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"ana.silva@techcorp.io", true},
		{"a@b", false},
		{"a b@c.com", false},
		{"a@@b.com", false},
		{"@b.com", false},
		{"a@.com", false},
		{"", false},
		{"plainaddress", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Fatalf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestLeadValidate(t *testing.T) {
	valid := Lead{
		ID:      1,
		Name:    "Ana Silva",
		Company: "TechCorp",
		Email:   "ana@techcorp.com",
		Source:  "Web",
		Status:  LeadStatusNew,
		Score:   82,
	}

	tests := []struct {
		name    string
		mutate  func(l Lead) Lead
		wantErr error
	}{
		{
			name:    "valid lead passes",
			mutate:  func(l Lead) Lead { return l },
			wantErr: nil,
		},
		{
			name:    "missing tld rejected",
			mutate:  func(l Lead) Lead { l.Email = "ana@techcorp"; return l },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "unknown status rejected",
			mutate:  func(l Lead) Lead { l.Status = "Archived"; return l },
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "empty status rejected",
			mutate:  func(l Lead) Lead { l.Status = ""; return l },
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "empty name rejected",
			mutate:  func(l Lead) Lead { l.Name = ""; return l },
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative score rejected",
			mutate:  func(l Lead) Lead { l.Score = -1; return l },
			wantErr: ErrNegativeScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidLeadStatus(t *testing.T) {
	for _, s := range LeadStatuses() {
		if !ValidLeadStatus(s) {
			t.Fatalf("expected %q to be a valid status", s)
		}
	}
	if ValidLeadStatus("new") {
		t.Fatal("status matching is case-sensitive; lowercase must be rejected")
	}
}
