// Package invoiceid derives structural attributes from invoice-number
// strings: the leading document-type prefix and the trailing consecutive.
package invoiceid

import (
	"strconv"
	"strings"
)

// UnknownPrefix is returned when an invoice number matches no known prefix.
const UnknownPrefix = "UNKNOWN"

// Prefix uppercases and trims id, then tests it against known in order using
// starts-with matching. Callers must order known longest-first so a short
// prefix cannot shadow a longer one it leads. Blank input or no match yields
// UnknownPrefix; the function never fails.
func Prefix(id string, known []string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return UnknownPrefix
	}
	for _, p := range known {
		if p != "" && strings.HasPrefix(id, p) {
			return p
		}
	}
	return UnknownPrefix
}

// Consecutive returns the trailing run of digits of the trimmed id as an
// integer, or nil when the id does not end in a digit. "FE12A34" yields 34:
// only the final run counts.
func Consecutive(id string) *int {
	id = strings.TrimSpace(id)
	end := len(id)
	start := end
	for start > 0 && id[start-1] >= '0' && id[start-1] <= '9' {
		start--
	}
	if start == end {
		return nil
	}
	n, err := strconv.Atoi(id[start:end])
	if err != nil {
		// run longer than an int; treat like no consecutive
		return nil
	}
	return &n
}
