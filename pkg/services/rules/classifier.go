package rules

import (
	"strings"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
)

// UnclassifiedColumn is the destination column of concepts no rule matches.
const UnclassifiedColumn = "Unclassified"

// Classify maps a free-text concept to its category and destination column.
//
// The exact-match pass runs to completion across every category before any
// keyword is tried: a short keyword of a later category must never preempt an
// exact phrase of an earlier one. Exact matching is case-sensitive equality
// on the trimmed text; keyword matching is case-insensitive containment.
// Blank input and misses both yield (CategoryUnclassified, UnclassifiedColumn).
func (r *Ruleset) Classify(text string) (domain.Category, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.CategoryUnclassified, UnclassifiedColumn
	}

	for _, c := range r.ConceptCategories {
		for _, m := range c.ExactMatch {
			if trimmed == m {
				return c.Name, c.Name.DestinationColumn()
			}
		}
	}

	lower := strings.ToLower(trimmed)
	for _, c := range r.ConceptCategories {
		for _, k := range c.Keywords {
			if k == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(k)) {
				return c.Name, c.Name.DestinationColumn()
			}
		}
	}

	return domain.CategoryUnclassified, UnclassifiedColumn
}
