package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
)

func TestGenerateFixesUnitRepairs(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "", UnitPrice: 2.5},
		{PartName: "Nut", Quantity: 5, Unit: "n/a", UnitPrice: 1.0},
		{PartName: "Washer", Quantity: 20, Unit: "PCS", UnitPrice: 0.1},
	}

	patches, report := GenerateFixes(rows, config.Default())
	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 3)
	assert.Equal(t, "pc", fixed[0].Unit, "missing unit gets the default")
	assert.Equal(t, "pc", fixed[1].Unit, "placeholder unit gets the default")
	assert.Equal(t, "pc", fixed[2].Unit, "spelling variant is normalized")
	assert.Equal(t, 3, report.FixedUnits)
	assert.Equal(t, 0, report.DroppedRows)
}

func TestGenerateFixesPriceRounding(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 3.14159},
	}

	patches, report := GenerateFixes(rows, config.Default())
	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 1)
	assert.InDelta(t, 3.14, fixed[0].UnitPrice, 1e-9)
	assert.Equal(t, 1, report.FixedNumbers)
}

func TestGenerateFixesQuantityClamps(t *testing.T) {
	t.Run("negative quantity drops without a positive floor", func(t *testing.T) {
		rows := []model.ParsedRow{
			{PartName: "Bolt", Quantity: -5, Unit: "pc", UnitPrice: 2.5},
		}
		patches, report := GenerateFixes(rows, config.Default())
		fixed := ApplyFixes(rows, patches)

		assert.Empty(t, fixed)
		assert.Equal(t, 1, report.DroppedRows)
	})

	t.Run("negative quantity clamps to a configured floor", func(t *testing.T) {
		opts := config.Default()
		opts.MinQuantity = 0.001

		rows := []model.ParsedRow{
			{PartName: "Solder paste", Quantity: -5, Unit: "kg", UnitPrice: 30},
		}
		patches, report := GenerateFixes(rows, opts)
		fixed := ApplyFixes(rows, patches)

		require.Len(t, fixed, 1)
		assert.InDelta(t, 0.001, fixed[0].Quantity, 1e-12)
		assert.Equal(t, 1, report.FixedNumbers)
		assert.Equal(t, 0, report.DroppedRows)
	})

	t.Run("huge quantity clamps to the ceiling", func(t *testing.T) {
		rows := []model.ParsedRow{
			{PartName: "Bolt", Quantity: 2_000_000, Unit: "pc", UnitPrice: 2.5},
		}
		patches, report := GenerateFixes(rows, config.Default())
		fixed := ApplyFixes(rows, patches)

		require.Len(t, fixed, 1)
		assert.InDelta(t, 1_000_000, fixed[0].Quantity, 1e-9)
		assert.Equal(t, 1, report.FixedNumbers)
	})
}

func TestGenerateFixesDropsUnusableRows(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "Nut", Quantity: math.NaN(), Unit: "pc", UnitPrice: 1.0},
		{PartName: "Washer", Quantity: math.Inf(1), Unit: "pc", UnitPrice: 0.1},
		{PartName: "Screw", Quantity: 5, Unit: "pc", UnitPrice: -1},
	}

	patches, report := GenerateFixes(rows, config.Default())
	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 1)
	assert.Equal(t, "Bolt", fixed[0].PartName)
	assert.Equal(t, 4, report.DroppedRows)
}

func TestGenerateFixesMergesDuplicates(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "Nut", Quantity: 5, Unit: "pc", UnitPrice: 1.0},
		{PartName: "bolt ", Quantity: 5, Unit: "pc", UnitPrice: 2.5},
	}

	patches, report := GenerateFixes(rows, config.Default())
	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 2)
	assert.Equal(t, "Bolt", fixed[0].PartName, "first occurrence survives")
	assert.InDelta(t, 15, fixed[0].Quantity, 1e-9, "quantities are conserved")
	assert.Equal(t, "Nut", fixed[1].PartName)
	assert.Equal(t, 1, report.MergedRows)

	// Merged output carries no duplicate warnings.
	for _, w := range Validate(fixed, config.Default()) {
		assert.NotEqual(t, model.WarningDuplicateName, w.Type)
	}
}

func TestGenerateFixesMergeDisabled(t *testing.T) {
	opts := config.Default()
	opts.MergeDuplicates = false

	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "Bolt", Quantity: 5, Unit: "pc", UnitPrice: 2.5},
	}

	patches, report := GenerateFixes(rows, opts)
	fixed := ApplyFixes(rows, patches)

	assert.Len(t, fixed, 2)
	assert.Zero(t, report.MergedRows)
}

func TestGenerateFixesMergeUsesCleanedQuantities(t *testing.T) {
	// The duplicate's quantity is clamped before it is absorbed.
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "Bolt", Quantity: 2_000_000, Unit: "pc", UnitPrice: 2.5},
	}

	patches, _ := GenerateFixes(rows, config.Default())
	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 1)
	assert.InDelta(t, 1_000_010, fixed[0].Quantity, 1e-9)
}

func TestFixesAreIdempotent(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "", UnitPrice: 2.555},
		{PartName: "Bolt", Quantity: 5, Unit: "pcs", UnitPrice: 2.56},
		{PartName: "Nut", Quantity: -1, Unit: "pc", UnitPrice: 1.0},
	}

	patches, _ := GenerateFixes(rows, config.Default())
	fixed := ApplyFixes(rows, patches)

	again, report := GenerateFixes(fixed, config.Default())
	assert.Empty(t, again)
	assert.Equal(t, "no changes", report.Summary())
}

func TestApplyFixesDropWinsOverReplace(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
		{PartName: "Nut", Quantity: 5, Unit: "pc", UnitPrice: 1.0},
	}
	unit := "kg"
	patches := []model.FixPatch{
		{RowIndex: 0, Replace: &model.RowPatch{Unit: &unit}},
		{RowIndex: 0, DropRow: true},
	}

	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 1)
	assert.Equal(t, "Nut", fixed[0].PartName)
}

func TestApplyFixesIgnoresOutOfRangePatches(t *testing.T) {
	rows := []model.ParsedRow{
		{PartName: "Bolt", Quantity: 10, Unit: "pc", UnitPrice: 2.5},
	}
	qty := 99.0
	patches := []model.FixPatch{
		{RowIndex: 7, Replace: &model.RowPatch{Quantity: &qty}},
	}

	fixed := ApplyFixes(rows, patches)

	require.Len(t, fixed, 1)
	assert.InDelta(t, 10, fixed[0].Quantity, 1e-9)
}

func TestReportSummary(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name:   "empty",
			report: Report{},
			want:   "no changes",
		},
		{
			name:   "single unit",
			report: Report{FixedUnits: 1},
			want:   "fixed 1 unit",
		},
		{
			name:   "everything",
			report: Report{FixedUnits: 2, FixedNumbers: 1, MergedRows: 3, DroppedRows: 1},
			want:   "fixed 2 units, normalized 1 number, merged 3 duplicate rows, dropped 1 invalid row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Summary())
		})
	}
}
