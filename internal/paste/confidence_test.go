package paste

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
		want float64
	}{
		{
			name: "all rows parsed with header and tabs",
			sig:  Signals{RowsParsed: 2, HeaderDetected: true, TabDelimited: true},
			want: 0.42 + 0.04 + 0.12 + 0.12,
		},
		{
			name: "ten rows saturate the row count term",
			sig:  Signals{RowsParsed: 10},
			want: 0.42 + 0.20,
		},
		{
			name: "twenty rows score no higher than ten",
			sig:  Signals{RowsParsed: 20},
			want: 0.42 + 0.20,
		},
		{
			name: "skipped rows dilute the success rate",
			sig:  Signals{RowsParsed: 5, Skipped: 5},
			want: 0.42*0.5 + 0.10,
		},
		{
			name: "every bonus at once",
			sig: Signals{
				RowsParsed:     10,
				HeaderDetected: true,
				TabDelimited:   true,
				SequenceColumn: true,
				BannersSkipped: true,
			},
			want: 1.0, // 1.06 before clamping
		},
		{
			name: "mixed format penalty",
			sig:  Signals{RowsParsed: 10, MixedFormat: true},
			want: 0.42 + 0.20 - 0.10,
		},
		{
			name: "nothing parsed",
			sig:  Signals{Skipped: 4},
			want: 0,
		},
		{
			name: "empty",
			sig:  Signals{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.sig), 1e-9)
		})
	}
}

func TestScoreHeaderIsMonotonic(t *testing.T) {
	sig := Signals{RowsParsed: 5, TabDelimited: true}
	without := Score(sig)
	sig.HeaderDetected = true
	assert.Greater(t, Score(sig), without)
}
