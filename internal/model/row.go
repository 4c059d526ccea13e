package model

// ParsedRow is a single structured line item extracted from pasted text.
// Description, Unit and Currency are optional; the empty string means absent.
type ParsedRow struct {
	PartName    string  `json:"part_name"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// ColumnInference is the resolved semantic role of every column in the paste.
// Mapping has exactly one entry per input column; at most one column carries
// each non-ignore field.
type ColumnInference struct {
	Mapping     []Field `json:"mapping"`
	Confidence  float64 `json:"confidence"`
	MixedFormat bool    `json:"mixed_format"`
}

// Empty reports whether inference found no usable mapping.
func (c ColumnInference) Empty() bool {
	return len(c.Mapping) == 0
}

// ColumnOf returns the index of the column assigned the given field, or -1.
func (c ColumnInference) ColumnOf(f Field) int {
	for i, m := range c.Mapping {
		if m == f {
			return i
		}
	}
	return -1
}

// ParseResult is the terminal artifact of a pipeline run.
type ParseResult struct {
	DetectedFormat string          `json:"detected_format,omitempty"`
	Rows           []ParsedRow     `json:"rows"`
	Skipped        int             `json:"skipped"`
	Confidence     float64         `json:"confidence"`
	Inference      ColumnInference `json:"inference"`
}
