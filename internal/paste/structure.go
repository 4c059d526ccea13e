package paste

import (
	"strings"
)

// Structure locates the real data inside a tokenized paste: an optional
// header row, an optional sequence-number column, and the first data row.
type Structure struct {
	// HeaderRowIndex is 0 when row 0 is a recognized header, -1 otherwise.
	// Multi-row headers are not supported.
	HeaderRowIndex int
	// SequenceColIndex is the index of a detected line-number column, -1 if none.
	SequenceColIndex int
	// DataStartRow is the index of the first data row, -1 when the paste holds
	// no row with a plausible quantity or price (empty parse).
	DataStartRow int
	// BannersSkipped counts non-data description rows between the header and
	// the first data row.
	BannersSkipped int
}

// headerHints are the keyword fragments (English and Chinese) that identify a
// header row: line numbers, names, descriptions, quantities, units, prices,
// amounts and remarks.
var headerHints = []string{
	"no.", "no", "item", "line", "sn", "s/n", "seq",
	"part", "name", "product", "model", "material", "code",
	"description", "desc", "spec", "specification",
	"qty", "quantity", "pcs",
	"unit", "uom", "measure",
	"price", "unit price", "rate",
	"amount", "total", "subtotal",
	"remark", "remarks", "note", "notes", "currency",
	"序号", "编号", "品名", "名称", "型号", "物料", "料号",
	"描述", "规格", "数量", "单位", "单价", "价格", "金额", "合计", "备注", "币种",
}

// Classify analyzes tokenized rows and locates the data region. Rows before
// DataStartRow never reach column inference.
func Classify(rows []RawRow) Structure {
	st := Structure{HeaderRowIndex: -1, SequenceColIndex: -1, DataStartRow: -1}
	if len(rows) == 0 {
		return st
	}

	if isHeaderRow(rows[0]) {
		st.HeaderRowIndex = 0
	}

	// First row past the header with at least one plausible quantity or
	// price cell is the data start. Banner rows (product-family blurbs,
	// section titles) can never qualify: they are ≥80% textual with no
	// quantity/price shape.
	first := st.HeaderRowIndex + 1
	for i := first; i < len(rows); i++ {
		if rowHasQuantityOrPrice(rows[i]) {
			st.DataStartRow = i
			break
		}
		if isBannerRow(rows[i]) {
			st.BannersSkipped++
		}
	}
	if st.DataStartRow < 0 {
		return st
	}

	st.SequenceColIndex = detectSequenceColumn(rows[st.DataStartRow:])
	return st
}

// isHeaderRow reports whether row 0 matches the keyword hint set. A single
// matching cell can be coincidence in data, so two are required.
func isHeaderRow(row RawRow) bool {
	matched := 0
	for _, cell := range row {
		cell = strings.ToLower(strings.TrimSpace(cell))
		if cell == "" || len(cell) > 24 {
			continue
		}
		for _, hint := range headerHints {
			if cell == hint || strings.Contains(cell, hint) {
				matched++
				break
			}
		}
	}
	return matched >= 2
}

// isBannerRow reports whether a row is a non-data description row: at least
// 80% of its populated cells are textual and none has a quantity/price shape.
func isBannerRow(row RawRow) bool {
	populated, textual := 0, 0
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		populated++
		if plausibleQuantity(cell) || plausiblePrice(cell) {
			return false
		}
		if isTextualCell(cell) {
			textual++
		}
	}
	if populated == 0 {
		return false
	}
	return float64(textual)/float64(populated) >= 0.8
}

// isTextualCell reports whether a cell is descriptive text rather than a
// short number: long strings, mixed alphanumeric technical specs, and
// anything that fails to parse as a short number all count as textual.
func isTextualCell(cell string) bool {
	if len(cell) > 15 {
		return true
	}
	if looksNumeric(cell) && len(cell) <= 8 {
		return false
	}
	return true
}

func rowHasQuantityOrPrice(row RawRow) bool {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if plausibleQuantity(cell) || plausiblePrice(cell) {
			return true
		}
	}
	return false
}

// detectSequenceColumn examines up to the first 5 data rows, for each of the
// first 2 columns. A column qualifies when ≥70% of its populated sampled
// cells are ≤4 digit integers within {pos, pos+1, pos+2} of their 1-based
// position, tolerating lists that start at 2 or 3.
func detectSequenceColumn(dataRows []RawRow) int {
	sample := dataRows
	if len(sample) > 5 {
		sample = sample[:5]
	}
	if len(sample) == 0 {
		return -1
	}

	for col := 0; col < 2; col++ {
		populated, matching := 0, 0
		for pos, row := range sample {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			populated++
			if len(cell) > 4 {
				continue
			}
			v, _, ok := ParseNumber(cell)
			if !ok || v != float64(int(v)) {
				continue
			}
			expect := pos + 1
			if n := int(v); n == expect || n == expect+1 || n == expect+2 {
				matching++
			}
		}
		if populated >= 2 && float64(matching)/float64(populated) >= 0.7 {
			return col
		}
	}
	return -1
}
