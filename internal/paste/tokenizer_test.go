package paste

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRows   []RawRow
		wantFormat Format
	}{
		{
			name:       "tab delimited spreadsheet paste",
			input:      "Part\tQty\tPrice\nBolt\t10\t2.50",
			wantRows:   []RawRow{{"Part", "Qty", "Price"}, {"Bolt", "10", "2.50"}},
			wantFormat: FormatTab,
		},
		{
			name:       "tab wins even when commas are present",
			input:      "Bolt, M8\t10\nNut, M8\t5",
			wantRows:   []RawRow{{"Bolt, M8", "10"}, {"Nut, M8", "5"}},
			wantFormat: FormatTab,
		},
		{
			name:       "comma delimited",
			input:      "Bolt,10,2.50\nNut,5,1.00",
			wantRows:   []RawRow{{"Bolt", "10", "2.50"}, {"Nut", "5", "1.00"}},
			wantFormat: FormatComma,
		},
		{
			name:       "semicolon delimited",
			input:      "Bolt;10;2.50",
			wantRows:   []RawRow{{"Bolt", "10", "2.50"}},
			wantFormat: FormatSemicolon,
		},
		{
			name:       "runs of spaces",
			input:      "Bolt  10  2.50",
			wantRows:   []RawRow{{"Bolt", "10", "2.50"}},
			wantFormat: FormatSpaces,
		},
		{
			name:       "quoted cell containing the delimiter",
			input:      `"Bolt, M8 x 20",10,2.50`,
			wantRows:   []RawRow{{"Bolt, M8 x 20", "10", "2.50"}},
			wantFormat: FormatComma,
		},
		{
			name:       "quoted cell containing a literal newline",
			input:      "\"Bolt\nM8\",10",
			wantRows:   []RawRow{{"Bolt\nM8", "10"}},
			wantFormat: FormatComma,
		},
		{
			name:       "escaped quotes decode to a literal quote",
			input:      `"1/2"" hex bolt",10`,
			wantRows:   []RawRow{{`1/2" hex bolt`, "10"}},
			wantFormat: FormatComma,
		},
		{
			name:       "blank lines are dropped",
			input:      "Bolt\t10\n\n\nNut\t5",
			wantRows:   []RawRow{{"Bolt", "10"}, {"Nut", "5"}},
			wantFormat: FormatTab,
		},
		{
			name:       "single cell line is retained",
			input:      "Stainless steel fastener series",
			wantRows:   []RawRow{{"Stainless steel fastener series"}},
			wantFormat: FormatNone,
		},
		{
			name:       "windows line endings",
			input:      "Bolt\t10\r\nNut\t5\r\n",
			wantRows:   []RawRow{{"Bolt", "10"}, {"Nut", "5"}},
			wantFormat: FormatTab,
		},
		{
			name:       "full-width comma folds and splits",
			input:      "螺栓，10，2.50",
			wantRows:   []RawRow{{"螺栓", "10", "2.50"}},
			wantFormat: FormatComma,
		},
		{
			name:       "empty input",
			input:      "",
			wantRows:   nil,
			wantFormat: FormatNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, format := Tokenize(tt.input)
			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, tt.wantFormat, format)
		})
	}
}

func TestTokenizeCellsAreTrimmed(t *testing.T) {
	rows, _ := Tokenize("Bolt ,\t10 ")
	// Tab present, so the whole input splits on tabs only.
	assert.Equal(t, []RawRow{{"Bolt ,", "10"}}, rows)
}
