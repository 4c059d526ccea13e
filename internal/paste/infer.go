package paste

import (
	"strings"

	"github.com/pasteflow/pasteflow/internal/model"
)

// Minimal plausibility a column must show for the name field; below this the
// paste holds no usable data and inference yields an empty mapping.
const minNameEvidence = 0.2

// Synthetic padding columns keep the assignment matrix square. They lean
// toward the ignore slots but only slightly, so a real column never gets
// pushed off its ignore slot by padding.
const (
	syntheticIgnoreCost = 0.45
	syntheticFieldCost  = 0.5
)

// Infer scores every column against every candidate field and resolves the
// globally optimal one-to-one mapping via the assignment solver. Greedy
// per-column argmax is not enough: a quantity column and a price column can
// both score highest on price, and only a joint minimum-cost assignment keeps
// them apart.
func Infer(dataRows []RawRow) model.ColumnInference {
	if len(dataRows) == 0 {
		return model.ColumnInference{}
	}

	sample := dataRows
	if len(sample) > evidenceSampleRows {
		sample = sample[:evidenceSampleRows]
	}

	cols := 0
	for _, row := range sample {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return model.ColumnInference{}
	}

	evidence := make([]ColumnEvidence, cols)
	textColsBefore := 0
	for c := 0; c < cols; c++ {
		cells := make([]string, 0, len(sample))
		for _, row := range sample {
			if c < len(row) {
				cells = append(cells, row[c])
			}
		}
		evidence[c] = columnEvidence(cells, textColsBefore)
		if evidence[c].textColumn() {
			textColsBefore++
		}
	}

	boostRightmostNumericPrice(evidence)

	mapping := resolveMapping(evidence)
	nameCol := -1
	for c, f := range mapping {
		if f == model.FieldName {
			nameCol = c
		}
	}
	if nameCol < 0 || evidence[nameCol].Scores[model.FieldName] < minNameEvidence {
		return model.ColumnInference{}
	}

	return model.ColumnInference{
		Mapping:     mapping,
		Confidence:  mappingConfidence(mapping, evidence),
		MixedFormat: detectMixedFormat(sample),
	}
}

// boostRightmostNumericPrice raises price evidence for the rightmost mostly
// numeric column; unit prices and amounts sit at the right edge of real-world
// tables.
func boostRightmostNumericPrice(evidence []ColumnEvidence) {
	for c := len(evidence) - 1; c >= 0; c-- {
		if evidence[c].NumericFrac >= 0.6 {
			evidence[c].Scores[model.FieldPrice] = clamp01(evidence[c].Scores[model.FieldPrice] + 0.15)
			return
		}
	}
}

// resolveMapping converts evidence to a cost matrix and solves the assignment
// problem. The field axis holds the five semantic fields plus one ignore slot
// per column, so any subset of columns may be ignored; synthetic columns pad
// the other axis to square.
func resolveMapping(evidence []ColumnEvidence) []model.Field {
	cols := len(evidence)
	fields := model.AssignableFields
	n := cols + len(fields)

	maxScore := 0.0
	for _, ev := range evidence {
		for _, s := range ev.Scores {
			if s > maxScore {
				maxScore = s
			}
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			isField := j < len(fields)
			switch {
			case i < cols && isField:
				cost[i][j] = maxScore - evidence[i].Scores[fields[j]]
			case i < cols:
				cost[i][j] = maxScore - evidence[i].Scores[model.FieldIgnore]
			case isField:
				cost[i][j] = syntheticFieldCost
			default:
				cost[i][j] = syntheticIgnoreCost
			}
		}
	}

	assigned := solveAssignment(cost)

	mapping := make([]model.Field, cols)
	for c := 0; c < cols; c++ {
		if j := assigned[c]; j < len(fields) {
			mapping[c] = fields[j]
		} else {
			mapping[c] = model.FieldIgnore
		}
	}
	return mapping
}

func mappingConfidence(mapping []model.Field, evidence []ColumnEvidence) float64 {
	sum, n := 0.0, 0
	for c, f := range mapping {
		if f == model.FieldIgnore {
			continue
		}
		sum += evidence[c].Scores[f]
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// detectMixedFormat reports inconsistent row shapes: two or more distinct
// column counts, each carried by a meaningful share of the sample.
func detectMixedFormat(sample []RawRow) bool {
	widths := map[int]int{}
	for _, row := range sample {
		w := 0
		for i, cell := range row {
			if strings.TrimSpace(cell) != "" {
				w = i + 1
			}
		}
		widths[w]++
	}
	significant := 0
	for _, count := range widths {
		if float64(count)/float64(len(sample)) >= 0.2 {
			significant++
		}
	}
	return significant > 1
}
