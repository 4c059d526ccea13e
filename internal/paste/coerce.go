package paste

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Currency symbols and ISO-like codes recognized (and stripped) by numeric
// coercion. The symbol table also infers a document currency.
var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"¥": "CNY",
	"£": "GBP",
}

var currencyCodeRe = regexp.MustCompile(`(?i)\b(USD|EUR|GBP|JPY|CNY|RMB|HKD|AUD|CAD|CHF)\b`)

// ParseNumber coerces a raw cell into a float. It strips currency symbols and
// ISO-like codes, drops whitespace, and applies the comma heuristic: a comma
// with no dot present is read as a decimal separator (European convention),
// otherwise commas are thousands separators and are removed.
//
// The heuristic is locale-blind: "1,000" parses as 1.0, not one thousand.
// This matches the behavior callers already depend on; making locale explicit
// is a config-level decision, not something to second-guess per cell.
//
// Returns the value, the inferred currency code (empty if none), and whether
// the cell held numeric content at all. A currency symbol with no digits
// infers the currency but is not numeric content. Non-finite results coerce
// to 0.
func ParseNumber(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}

	currency := ""
	for sym, code := range currencySymbols {
		if strings.Contains(s, sym) {
			currency = code
			s = strings.ReplaceAll(s, sym, "")
		}
	}
	if m := currencyCodeRe.FindString(s); m != "" {
		currency = strings.ToUpper(m)
		if currency == "RMB" {
			currency = "CNY"
		}
		s = currencyCodeRe.ReplaceAllString(s, "")
	}

	s = strings.Join(strings.Fields(s), "")
	if s == "" || !strings.ContainsAny(s, "0123456789") {
		return 0, currency, false
	}

	if strings.Contains(s, ",") {
		if !strings.Contains(s, ".") {
			// Comma as decimal separator; with several commas the last one
			// is the decimal point.
			last := strings.LastIndex(s, ",")
			s = strings.ReplaceAll(s[:last], ",", "") + "." + s[last+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, currency, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, currency, true
	}
	return v, currency, true
}

// looksNumeric reports whether the cell parses as a number once currency
// decoration is stripped.
func looksNumeric(s string) bool {
	_, _, ok := ParseNumber(s)
	return ok
}

// plausibleQuantity reports whether the cell looks like an ordered quantity:
// a small positive integer.
func plausibleQuantity(s string) bool {
	v, _, ok := ParseNumber(s)
	if !ok || v <= 0 || v > 100000 {
		return false
	}
	return v == math.Trunc(v)
}

// plausiblePrice reports whether the cell looks like a unit price: a positive
// number ≥1, or any positive number carrying currency decoration.
func plausiblePrice(s string) bool {
	v, currency, ok := ParseNumber(s)
	if !ok || v <= 0 {
		return false
	}
	return v >= 1 || currency != ""
}

// decimalPlaces returns the number of digits after the decimal point in the
// cell's textual form, after delimiter normalization. Returns 0 for integers.
func decimalPlaces(s string) int {
	s = strings.TrimSpace(s)
	sep := strings.LastIndexAny(s, ".,")
	if sep < 0 || sep == len(s)-1 {
		return 0
	}
	frac := s[sep+1:]
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0
		}
	}
	// Three digits after a comma is a thousands group, not a fraction.
	if s[sep] == ',' && len(frac) == 3 {
		return 0
	}
	return len(frac)
}
