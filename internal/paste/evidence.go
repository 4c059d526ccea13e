package paste

import (
	"math"
	"strings"
	"unicode"

	"github.com/pasteflow/pasteflow/internal/model"
)

// evidenceSampleRows bounds how many rows the probes examine per column.
const evidenceSampleRows = 50

// ColumnEvidence holds the plausibility score of each candidate field for one
// column. Scores live in [0,1]; immutable once computed.
type ColumnEvidence struct {
	Scores      map[model.Field]float64
	NumericFrac float64
	Populated   int
}

// columnEvidence probes one column's cells and scores every candidate field.
// colOrder and textColsBefore disambiguate name vs description: the leftmost
// qualifying text column reads as the name, later ones as descriptions.
func columnEvidence(cells []string, textColsBefore int) ColumnEvidence {
	ev := ColumnEvidence{Scores: map[model.Field]float64{}}

	populated := 0
	numeric := 0
	qtyHits := 0
	priceHits := 0
	unitHits := 0
	unitDictHits := 0
	textHits := 0
	intOnly := true
	currencySeen := false
	totalLen := 0

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		populated++
		totalLen += len(cell)

		v, currency, ok := ParseNumber(cell)
		if ok {
			numeric++
			if currency != "" {
				currencySeen = true
			}
			if v != math.Trunc(v) {
				intOnly = false
			}
			if plausibleQuantity(cell) {
				qtyHits++
			}
			if v > 0 && (decimalPlaces(cell) >= 1 && decimalPlaces(cell) <= 2 || v >= 1) {
				priceHits++
			}
			continue
		}

		if KnownUnit(cell) {
			unitDictHits++
			unitHits++
		} else if len(cell) <= 6 && isAlphaToken(cell) {
			unitHits++
		}
		if len([]rune(cell)) >= 2 {
			textHits++
		}
	}

	if populated == 0 {
		ev.Scores[model.FieldIgnore] = 0.6
		return ev
	}

	p := float64(populated)
	ev.Populated = populated
	ev.NumericFrac = float64(numeric) / p
	avgLen := float64(totalLen) / p

	// Quantity: short positive integers.
	qty := float64(qtyHits) / p
	if qty > 0 && intOnly {
		qty = clamp01(qty + 0.1)
	}
	ev.Scores[model.FieldQuantity] = qty

	// Price: decimals with 1–2 places or values ≥1; currency decoration is a
	// strong signal. The rightmost-numeric bonus is added by the resolver,
	// which can see all columns.
	price := float64(priceHits) / p
	if currencySeen {
		price = clamp01(price + 0.2)
	}
	ev.Scores[model.FieldPrice] = price

	// Unit: short non-numeric tokens; dictionary hits dominate.
	unit := 0.5 * float64(unitHits) / p
	unit += 0.5 * float64(unitDictHits) / p
	ev.Scores[model.FieldUnit] = clamp01(unit)

	// Name vs description: free text, disambiguated by column order.
	text := float64(textHits) / p
	name := text
	desc := text * 0.6
	if textColsBefore > 0 {
		name = text * 0.55
		desc = text * 0.8
	}
	if avgLen > 15 {
		desc = clamp01(desc + 0.15)
		name *= 0.85
	}
	ev.Scores[model.FieldName] = clamp01(name)
	ev.Scores[model.FieldDescription] = clamp01(desc)

	ev.Scores[model.FieldIgnore] = 0.15
	return ev
}

// textColumn reports whether the evidence marks this column as mostly free
// text, which makes later text columns read as descriptions.
func (ev ColumnEvidence) textColumn() bool {
	return ev.Populated > 0 && ev.Scores[model.FieldName] >= 0.4 && ev.NumericFrac < 0.5
}

func isAlphaToken(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '/' && r != '.' {
			return false
		}
	}
	return s != ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
