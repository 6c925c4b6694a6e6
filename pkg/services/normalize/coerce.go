package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts covers the formats seen across the two exports. Day-first
// variants come before US-style since both systems emit Latin American dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

// thousandsGrouped matches amounts whose commas can only be thousands
// separators, e.g. "1,250" or "1,250,500.75".
var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseAmount coerces a monetary cell to a decimal. Currency signs and
// whitespace are tolerated; commas are stripped only when they form
// unambiguous thousands groups. Anything else with a comma (a comma-decimal
// "1,5", a dot-grouped "150.000,50") is ambiguous and yields an invalid
// NullDecimal rather than a wrong value, as does anything that fails to
// parse.
func parseAmount(cell string) decimal.NullDecimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.NullDecimal{}
	}
	s = strings.NewReplacer("$", "", " ", "", " ", "").Replace(s)
	if strings.Contains(s, ",") {
		if !thousandsGrouped.MatchString(s) {
			return decimal.NullDecimal{}
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// parseDate coerces a date cell, returning nil when no layout matches.
func parseDate(cell string) *time.Time {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
