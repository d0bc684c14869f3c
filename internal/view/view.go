// Package view derives the displayed subset of a collection from the
// current search, filter, and sort state. Every function is pure: the
// input slice is never mutated and the result is always a new slice.
package view

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// FilterLeads keeps leads whose name or company contains search
// (case-insensitive substring; empty matches everything) and whose
// status equals status exactly (empty means no status filter).
func FilterLeads(leads []types.Lead, search, status string) []types.Lead {
	needle := strings.ToLower(search)
	out := make([]types.Lead, 0, len(leads))
	for _, l := range leads {
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(l.Company), needle) {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SortLeads orders leads by the given sort token. "score-desc" sorts
// descending by score, ties keeping their prior relative order; any
// other token (including empty) returns the input order unchanged.
func SortLeads(leads []types.Lead, token string) []types.Lead {
	out := make([]types.Lead, len(leads))
	copy(out, leads)
	if token == types.SortScoreDesc {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score > out[j].Score
		})
	}
	return out
}

// VisibleLeads combines filtering and sorting into the displayed,
// ordered subset.
func VisibleLeads(leads []types.Lead, search string, filters types.LeadFilters) []types.Lead {
	return SortLeads(FilterLeads(leads, search, filters.StatusFilter), filters.SortBy)
}

// FilterOpportunities keeps opportunities whose name or account name
// contains search, case-insensitively. Empty search matches everything.
func FilterOpportunities(opps []types.Opportunity, search string) []types.Opportunity {
	needle := strings.ToLower(search)
	out := make([]types.Opportunity, 0, len(opps))
	for _, o := range opps {
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.Name), needle) &&
			!strings.Contains(strings.ToLower(o.AccountName), needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Page returns the 1-based page of items with perPage entries per page.
// Out-of-range pages return an empty slice; perPage <= 0 returns the
// whole input.
func Page[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
