package model

// RowPatch is a partial ParsedRow; nil fields are left untouched.
type RowPatch struct {
	PartName    *string  `json:"part_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p *RowPatch) Empty() bool {
	return p == nil || (p.PartName == nil && p.Description == nil && p.Unit == nil &&
		p.Currency == nil && p.Quantity == nil && p.UnitPrice == nil)
}

// ApplyTo overwrites the row's fields with the patch's non-nil values.
func (p *RowPatch) ApplyTo(row *ParsedRow) {
	if p == nil {
		return
	}
	if p.PartName != nil {
		row.PartName = *p.PartName
	}
	if p.Description != nil {
		row.Description = *p.Description
	}
	if p.Unit != nil {
		row.Unit = *p.Unit
	}
	if p.Currency != nil {
		row.Currency = *p.Currency
	}
	if p.Quantity != nil {
		row.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		row.UnitPrice = *p.UnitPrice
	}
}

// FixPatch is a proposed, not-yet-applied mutation of one row. A row may carry
// several patches; DropRow takes precedence over Replace when both target the
// same index.
type FixPatch struct {
	Replace   *RowPatch `json:"replace,omitempty"`
	MergeInto *int      `json:"merge_into,omitempty"`
	RowIndex  int       `json:"row_index"`
	DropRow   bool      `json:"drop_row,omitempty"`
}
