// Package model defines the data types shared across the paste-import pipeline.
package model

// Field is the semantic role a column can be assigned during inference.
type Field int

const (
	// FieldIgnore marks a column that carries no usable data.
	FieldIgnore Field = iota
	// FieldName is the part/item name column.
	FieldName
	// FieldDescription is a free-text description column.
	FieldDescription
	// FieldQuantity is the ordered-quantity column.
	FieldQuantity
	// FieldUnit is the unit-of-measure column.
	FieldUnit
	// FieldPrice is the unit-price column.
	FieldPrice
)

// AssignableFields lists every non-ignore field in inference order.
var AssignableFields = []Field{FieldName, FieldDescription, FieldQuantity, FieldUnit, FieldPrice}

// String returns the lowercase field name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDescription:
		return "description"
	case FieldQuantity:
		return "quantity"
	case FieldUnit:
		return "unit"
	case FieldPrice:
		return "price"
	case FieldIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}
