package paste

import (
	"strings"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
)

// Parse runs the full pipeline over one pasted text: tokenize, locate the
// data region, infer column roles, coerce values, and score confidence. It
// always returns a result, never an error; malformed input degrades into
// skipped rows and a low confidence score.
func Parse(text string, opts config.Options) model.ParseResult {
	opts = opts.Normalized()

	if strings.TrimSpace(text) == "" {
		return model.ParseResult{Rows: []model.ParsedRow{}}
	}

	rows, format := Tokenize(text)
	st := Classify(rows)
	if st.DataStartRow < 0 {
		return model.ParseResult{Rows: []model.ParsedRow{}, DetectedFormat: string(format)}
	}

	data := rows[st.DataStartRow:]
	if st.SequenceColIndex >= 0 {
		data = exciseColumn(data, st.SequenceColIndex)
	}

	inference := Infer(data)
	if inference.Empty() {
		return model.ParseResult{Rows: []model.ParsedRow{}, DetectedFormat: string(format)}
	}

	parsed := make([]model.ParsedRow, 0, len(data))
	skipped := 0
	for _, raw := range data {
		row, ok := coerceRow(raw, inference)
		if !ok {
			skipped++
			continue
		}
		parsed = append(parsed, row)
	}

	confidence := Score(Signals{
		RowsParsed:     len(parsed),
		Skipped:        skipped,
		HeaderDetected: st.HeaderRowIndex >= 0,
		TabDelimited:   format == FormatTab,
		SequenceColumn: st.SequenceColIndex >= 0,
		BannersSkipped: st.BannersSkipped > 0,
		MixedFormat:    inference.MixedFormat,
	})

	return model.ParseResult{
		Rows:           parsed,
		Skipped:        skipped,
		Confidence:     confidence,
		DetectedFormat: string(format),
		Inference:      inference,
	}
}

// coerceRow maps one raw row through the inferred column roles. A row with no
// name cell is not a usable line item and counts as skipped.
func coerceRow(raw RawRow, inference model.ColumnInference) (model.ParsedRow, bool) {
	var row model.ParsedRow

	cell := func(col int) string {
		if col < 0 || col >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[col])
	}

	row.PartName = cell(inference.ColumnOf(model.FieldName))
	if row.PartName == "" {
		return model.ParsedRow{}, false
	}
	row.Description = cell(inference.ColumnOf(model.FieldDescription))

	// A paste without a quantity column is a plain item/price list; one of
	// each is the only sensible reading.
	row.Quantity = 1
	if qtyCol := inference.ColumnOf(model.FieldQuantity); qtyCol >= 0 {
		v, currency, ok := ParseNumber(cell(qtyCol))
		if ok {
			row.Quantity = v
		} else {
			row.Quantity = 0
		}
		if currency != "" && row.Currency == "" {
			row.Currency = currency
		}
	}

	if priceCol := inference.ColumnOf(model.FieldPrice); priceCol >= 0 {
		v, currency, ok := ParseNumber(cell(priceCol))
		if ok {
			row.UnitPrice = v
		}
		if currency != "" {
			row.Currency = currency
		}
	}

	if unitCol := inference.ColumnOf(model.FieldUnit); unitCol >= 0 {
		row.Unit = NormalizeUnit(cell(unitCol))
	}

	return row, true
}

// exciseColumn removes the sequence column from every data row before field
// inference sees it.
func exciseColumn(rows []RawRow, col int) []RawRow {
	out := make([]RawRow, len(rows))
	for i, row := range rows {
		if col >= len(row) {
			out[i] = row
			continue
		}
		trimmed := make(RawRow, 0, len(row)-1)
		trimmed = append(trimmed, row[:col]...)
		trimmed = append(trimmed, row[col+1:]...)
		out[i] = trimmed
	}
	return out
}
