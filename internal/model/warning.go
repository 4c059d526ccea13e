package model

// WarningType categorizes a data-quality finding.
type WarningType string

const (
	// WarningMissingUnit indicates the unit is absent after coercion.
	WarningMissingUnit WarningType = "missing_unit"
	// WarningSuspiciousUnit indicates the unit resolved to a known junk token.
	WarningSuspiciousUnit WarningType = "suspicious_unit"
	// WarningQtyZero indicates a zero or negative quantity.
	WarningQtyZero WarningType = "qty_zero"
	// WarningLargeQty indicates a quantity above the configured ceiling.
	WarningLargeQty WarningType = "large_qty"
	// WarningPriceZero indicates a unit price of exactly zero.
	WarningPriceZero WarningType = "price_zero"
	// WarningTinyPrice indicates a positive price below the configured floor.
	WarningTinyPrice WarningType = "tiny_price"
	// WarningNameTooShort indicates a trimmed name below the minimum length.
	WarningNameTooShort WarningType = "name_too_short"
	// WarningDuplicateName indicates a case-insensitive name shared by ≥2 rows.
	WarningDuplicateName WarningType = "duplicate_name"
	// WarningMixedCurrency indicates more than one currency across the row set.
	WarningMixedCurrency WarningType = "mixed_currency"
)

// ValidationWarning points at a row (and optionally a field) at validation
// time. Warnings go stale once rows are dropped or merged; callers must
// re-validate after applying fixes.
type ValidationWarning struct {
	Field    *Field      `json:"field,omitempty"`
	Type     WarningType `json:"type"`
	Message  string      `json:"message"`
	RowIndex int         `json:"row_index"`
}
