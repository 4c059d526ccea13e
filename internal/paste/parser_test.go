package paste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
)

func TestParseTabTableWithHeader(t *testing.T) {
	text := "Part\tQty\tPrice\nBolt\t10\t2.50\nNut\t5\t1.00\n"

	result := Parse(text, config.Default())

	require.Len(t, result.Rows, 2)
	assert.Equal(t, model.ParsedRow{PartName: "Bolt", Quantity: 10, UnitPrice: 2.5}, result.Rows[0])
	assert.Equal(t, model.ParsedRow{PartName: "Nut", Quantity: 5, UnitPrice: 1.0}, result.Rows[1])
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, string(FormatTab), result.DetectedFormat)
	// Full success rate, two rows, header and tab bonuses.
	assert.InDelta(t, 0.70, result.Confidence, 1e-9)
}

func TestParseSequenceColumnAndBanner(t *testing.T) {
	text := "No.\tItem\tQty\tUnit Price\n" +
		"Premium stainless steel fastener series\n" +
		"1\tBolt M8\t100\t0.25\n" +
		"2\tNut M8\t100\t0.10\n" +
		"3\tWasher M8\t200\t0.05\n"

	result := Parse(text, config.Default())

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "Bolt M8", result.Rows[0].PartName)
	assert.InDelta(t, 100, result.Rows[0].Quantity, 1e-9)
	assert.InDelta(t, 0.25, result.Rows[0].UnitPrice, 1e-9)
	// The sequence column is removed, not mapped to a field.
	assert.Equal(t, 0, result.Inference.ColumnOf(model.FieldName))
	// Header, tab, sequence and banner bonuses all fire.
	assert.Greater(t, result.Confidence, 0.85)
}

func TestParseCurrencyAndUnits(t *testing.T) {
	text := "Bolt\t10\tpcs\t$2.50\nNut\t5\tpcs\t$1.00\n"

	result := Parse(text, config.Default())

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "pc", result.Rows[0].Unit)
	assert.Equal(t, "USD", result.Rows[0].Currency)
	assert.InDelta(t, 2.5, result.Rows[0].UnitPrice, 1e-9)
}

func TestParseRowWithoutNameIsSkipped(t *testing.T) {
	text := "Bolt\t10\t2.50\n\t5\t1.00\nNut\t5\t1.00\n"

	result := Parse(text, config.Default())

	require.Len(t, result.Rows, 2)
	assert.Equal(t, 1, result.Skipped)
}

func TestParseItemPriceListDefaultsQuantityToOne(t *testing.T) {
	text := "Hex bolt M8\t$2.50\nHex nut M8\t$1.00\nFlat washer M8\t$0.10\n"

	result := Parse(text, config.Default())

	require.Len(t, result.Rows, 3)
	for _, row := range result.Rows {
		assert.InDelta(t, 1, row.Quantity, 1e-9)
	}
	assert.Equal(t, -1, result.Inference.ColumnOf(model.FieldQuantity))
}

func TestParseProseYieldsEmptyResult(t *testing.T) {
	text := "Hi team,\nplease find the updated schedule attached.\nThanks!\n"

	result := Parse(text, config.Default())

	assert.Empty(t, result.Rows)
	assert.Zero(t, result.Confidence)
	assert.True(t, result.Inference.Empty())
}

func TestParseEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t\n"} {
		result := Parse(text, config.Default())
		assert.NotNil(t, result.Rows)
		assert.Empty(t, result.Rows)
		assert.Zero(t, result.Confidence)
	}
}

func TestParseCommaFallback(t *testing.T) {
	text := "Bolt,10,2.50\nNut,5,1.00\nWasher,20,0.10\n"

	result := Parse(text, config.Default())

	require.Len(t, result.Rows, 3)
	assert.Equal(t, string(FormatComma), result.DetectedFormat)
	assert.Equal(t, "Washer", result.Rows[2].PartName)
	assert.InDelta(t, 0.10, result.Rows[2].UnitPrice, 1e-9)
}

func TestParseNeverErrorsOnGarbage(t *testing.T) {
	inputs := []string{
		"\x00\x01\x02",
		",,,,\n,,,,\n",
		"\t\t\t\n\t\t\t\n",
		"\"unterminated quote\nBolt\t10",
	}
	for _, text := range inputs {
		assert.NotPanics(t, func() {
			result := Parse(text, config.Default())
			assert.NotNil(t, result.Rows)
		})
	}
}
