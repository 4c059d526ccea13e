package paste

import (
	"strings"

	"golang.org/x/text/width"
)

// unitAliases maps known unit spellings (English and Chinese) to their
// canonical token. Lookups happen on the lowercased, width-folded form.
var unitAliases = map[string]string{
	"pc":     "pc",
	"pcs":    "pc",
	"piece":  "pc",
	"pieces": "pc",
	"ea":     "ea",
	"each":   "pc",
	"个":      "pc",
	"件":      "pc",
	"只":      "pc",
	"支":      "pc",
	"set":    "set",
	"sets":   "set",
	"套":      "set",
	"台":      "set",
	"kit":    "kit",
	"kits":   "kit",
	"pair":   "pair",
	"pairs":  "pair",
	"对":      "pair",
	"双":      "pair",
	"box":    "box",
	"boxes":  "box",
	"箱":      "box",
	"盒":      "box",
	"bag":    "bag",
	"bags":   "bag",
	"袋":      "bag",
	"roll":   "roll",
	"rolls":  "roll",
	"卷":      "roll",
	"sheet":  "sheet",
	"sheets": "sheet",
	"张":      "sheet",
	"kg":     "kg",
	"kgs":    "kg",
	"公斤":     "kg",
	"千克":     "kg",
	"g":      "g",
	"克":      "g",
	"t":      "t",
	"吨":      "t",
	"l":      "l",
	"升":      "l",
	"ml":     "ml",
	"毫升":     "ml",
	"m":      "m",
	"米":      "m",
	"mm":     "mm",
	"毫米":     "mm",
	"cm":     "cm",
	"厘米":     "cm",
	"m2":     "m2",
	"sqm":    "m2",
	"平方米":    "m2",
	"lot":    "lot",
	"lots":   "lot",
	"批":      "lot",
}

// NormalizeUnit maps a raw unit token to its canonical form: lowercase, strip
// surrounding quotes, dictionary lookup, with one singularization retry for
// unknown tokens ending in "s". Unknown tokens pass through unchanged; the
// normalizer never invents units.
func NormalizeUnit(s string) string {
	s = width.Fold.String(strings.TrimSpace(s))
	s = strings.Trim(s, `"'`)
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if canon, ok := unitAliases[s]; ok {
		return canon
	}
	if strings.HasSuffix(s, "s") {
		if canon, ok := unitAliases[strings.TrimSuffix(s, "s")]; ok {
			return canon
		}
	}
	return s
}

// KnownUnit reports whether the token (after normalization) is in the unit
// dictionary. Used by column inference as unit evidence.
func KnownUnit(s string) bool {
	s = width.Fold.String(strings.TrimSpace(s))
	s = strings.Trim(s, `"'`)
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	if _, ok := unitAliases[s]; ok {
		return true
	}
	if strings.HasSuffix(s, "s") {
		_, ok := unitAliases[strings.TrimSuffix(s, "s")]
		return ok
	}
	return false
}
