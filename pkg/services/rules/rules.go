// Package rules holds the classification-rules document: the ordered concept
// categories and the invoice-type routing table keyed by prefix. The document
// is validated once at load time; row processing never sees a malformed rule.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
)

// ConfigError reports a malformed or missing entry in the rules document.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid classification rules: %s: %s", e.Field, e.Reason)
}

// CategoryRule declares one category's matchers. Declaration order is the
// classifier's priority order within each matching phase.
type CategoryRule struct {
	Name       domain.Category `mapstructure:"name"`
	ExactMatch []string        `mapstructure:"exact_match"`
	Keywords   []string        `mapstructure:"keywords"`
}

// Route maps an invoice-number prefix to its document type and the report
// sheet its rows are distributed to.
type Route struct {
	Prefix      string             `mapstructure:"prefix"`
	TipoFactura domain.InvoiceType `mapstructure:"invoice_type"`
	HojaDestino domain.Sheet       `mapstructure:"destination_sheet"`
}

// Ruleset is the validated classification-rules document.
type Ruleset struct {
	ConceptCategories []CategoryRule `mapstructure:"concept_categories"`
	InvoiceTypes      []Route        `mapstructure:"invoice_type_by_prefix"`
}

// Validate checks the document against the closed category/type/sheet enums.
// It mutates the ruleset only to uppercase routing prefixes.
func (r *Ruleset) Validate() error {
	if len(r.ConceptCategories) == 0 {
		return &ConfigError{Field: "concept_categories", Reason: "at least one category is required"}
	}
	seenCat := make(map[domain.Category]bool)
	for i, c := range r.ConceptCategories {
		field := fmt.Sprintf("concept_categories[%d]", i)
		if !knownCategory(c.Name) {
			return &ConfigError{Field: field, Reason: fmt.Sprintf("unknown category %q", c.Name)}
		}
		if seenCat[c.Name] {
			return &ConfigError{Field: field, Reason: fmt.Sprintf("category %q declared twice", c.Name)}
		}
		seenCat[c.Name] = true
		if len(c.ExactMatch) == 0 && len(c.Keywords) == 0 {
			return &ConfigError{Field: field, Reason: "category has neither exact_match nor keywords"}
		}
	}

	if len(r.InvoiceTypes) == 0 {
		return &ConfigError{Field: "invoice_type_by_prefix", Reason: "at least one route is required"}
	}
	seenPrefix := make(map[string]bool)
	for i := range r.InvoiceTypes {
		rt := &r.InvoiceTypes[i]
		field := fmt.Sprintf("invoice_type_by_prefix[%d]", i)
		rt.Prefix = strings.ToUpper(strings.TrimSpace(rt.Prefix))
		if rt.Prefix == "" {
			return &ConfigError{Field: field, Reason: "empty prefix"}
		}
		if seenPrefix[rt.Prefix] {
			return &ConfigError{Field: field, Reason: fmt.Sprintf("prefix %q routed twice", rt.Prefix)}
		}
		seenPrefix[rt.Prefix] = true
		if !knownInvoiceType(rt.TipoFactura) {
			return &ConfigError{Field: field, Reason: fmt.Sprintf("unknown invoice type %q", rt.TipoFactura)}
		}
		if !knownSheet(rt.HojaDestino) {
			return &ConfigError{Field: field, Reason: fmt.Sprintf("unknown destination sheet %q", rt.HojaDestino)}
		}
	}
	return nil
}

// OrderedPrefixes returns the routing prefixes longest-first (ties broken
// lexicographically) so that starts-with matching never lets a short prefix
// shadow a longer one it leads.
func (r *Ruleset) OrderedPrefixes() []string {
	out := make([]string, 0, len(r.InvoiceTypes))
	for _, rt := range r.InvoiceTypes {
		out = append(out, rt.Prefix)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// RouteFor resolves a prefix to its invoice type and destination sheet.
// Unmapped prefixes (including invoiceid.UnknownPrefix) route to
// InvoiceTypeUnknown / SheetNone.
func (r *Ruleset) RouteFor(prefix string) (domain.InvoiceType, domain.Sheet) {
	for _, rt := range r.InvoiceTypes {
		if rt.Prefix == prefix {
			return rt.TipoFactura, rt.HojaDestino
		}
	}
	return domain.InvoiceTypeUnknown, domain.SheetNone
}

func knownCategory(c domain.Category) bool {
	for _, k := range domain.KnownCategories() {
		if c == k {
			return true
		}
	}
	return false
}

func knownInvoiceType(t domain.InvoiceType) bool {
	for _, k := range domain.KnownInvoiceTypes() {
		if t == k {
			return true
		}
	}
	return false
}

func knownSheet(s domain.Sheet) bool {
	if s == domain.SheetNone {
		return true
	}
	for _, k := range domain.KnownSheets() {
		if s == k {
			return true
		}
	}
	return false
}
