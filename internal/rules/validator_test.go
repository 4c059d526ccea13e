package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
)

func warningTypes(warnings []model.ValidationWarning) []model.WarningType {
	if len(warnings) == 0 {
		return nil
	}
	types := make([]model.WarningType, len(warnings))
	for i, w := range warnings {
		types[i] = w.Type
	}
	return types
}

func TestValidateRowRules(t *testing.T) {
	tests := []struct {
		name string
		row  model.ParsedRow
		want []model.WarningType
	}{
		{
			name: "clean row",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
			want: nil,
		},
		{
			name: "missing unit",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 10, UnitPrice: 2.5},
			want: []model.WarningType{model.WarningMissingUnit},
		},
		{
			name: "placeholder unit",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 10, Unit: "n/a", UnitPrice: 2.5},
			want: []model.WarningType{model.WarningSuspiciousUnit},
		},
		{
			name: "zero quantity",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 0, Unit: "pc", UnitPrice: 2.5},
			want: []model.WarningType{model.WarningQtyZero},
		},
		{
			name: "negative quantity",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: -5, Unit: "pc", UnitPrice: 2.5},
			want: []model.WarningType{model.WarningQtyZero},
		},
		{
			name: "implausibly large quantity",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 2_000_000, Unit: "pc", UnitPrice: 2.5},
			want: []model.WarningType{model.WarningLargeQty},
		},
		{
			name: "zero price",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 10, Unit: "pc"},
			want: []model.WarningType{model.WarningPriceZero},
		},
		{
			name: "tiny price",
			row:  model.ParsedRow{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 0.001},
			want: []model.WarningType{model.WarningTinyPrice},
		},
		{
			name: "single character name",
			row:  model.ParsedRow{PartName: "B", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
			want: []model.WarningType{model.WarningNameTooShort},
		},
		{
			name: "several rules fire on one row",
			row:  model.ParsedRow{PartName: "B", Quantity: 0},
			want: []model.WarningType{
				model.WarningMissingUnit,
				model.WarningQtyZero,
				model.WarningPriceZero,
				model.WarningNameTooShort,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate([]model.ParsedRow{tt.row}, config.Default())
			assert.Equal(t, tt.want, warningTypes(got))
		})
	}
}

func TestValidateMissingUnitNotRequired(t *testing.T) {
	opts := config.Default()
	opts.RequireUnit = false

	got := Validate([]model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, UnitPrice: 2.5},
	}, opts)

	assert.Empty(t, got)
}

func TestValidateDuplicateNamesFlagEveryOccurrence(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "Nut", Quantity: 5, Unit: "pc", UnitPrice: 1.0},
		{PartName: "bolt ", Quantity: 3, Unit: "pc", UnitPrice: 2.5},
	}

	got := Validate(rows, config.Default())

	require.Len(t, got, 2)
	assert.Equal(t, model.WarningDuplicateName, got[0].Type)
	assert.Equal(t, 0, got[0].RowIndex)
	assert.Equal(t, model.WarningDuplicateName, got[1].Type)
	assert.Equal(t, 2, got[1].RowIndex)
}

func TestValidateMixedCurrency(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5, Currency: "USD"},
		{PartName: "Nut", Quantity: 5, Unit: "pc", UnitPrice: 1.0, Currency: "EUR"},
		{PartName: "Washer", Quantity: 20, Unit: "pc", UnitPrice: 0.1},
	}

	got := Validate(rows, config.Default())

	var flagged []int
	for _, w := range got {
		if w.Type == model.WarningMixedCurrency {
			flagged = append(flagged, w.RowIndex)
		}
	}
	// Rows without a currency stay unflagged.
	assert.Equal(t, []int{0, 1}, flagged)
}

func TestValidateSingleCurrencyIsFine(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5, Currency: "USD"},
		{PartName: "Nut", Quantity: 5, Unit: "pc", UnitPrice: 1.0, Currency: "USD"},
	}

	for _, w := range Validate(rows, config.Default()) {
		assert.NotEqual(t, model.WarningMixedCurrency, w.Type)
	}
}

func TestValidateEmpty(t *testing.T) {
	assert.Empty(t, Validate(nil, config.Default()))
}
