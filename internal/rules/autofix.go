package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
	"github.com/pasteflow/pasteflow/internal/paste"
)

// Report aggregates what an auto-fix pass changed.
type Report struct {
	FixedUnits   int `json:"fixed_units"`
	FixedNumbers int `json:"fixed_numbers"`
	MergedRows   int `json:"merged_rows"`
	DroppedRows  int `json:"dropped_rows"`
}

// Summary renders the report as a one-line human-readable sentence, non-zero
// categories in fixed order: units, numbers, merges, drops.
func (r Report) Summary() string {
	var parts []string
	if r.FixedUnits > 0 {
		parts = append(parts, fmt.Sprintf("fixed %d %s", r.FixedUnits, plural(r.FixedUnits, "unit")))
	}
	if r.FixedNumbers > 0 {
		parts = append(parts, fmt.Sprintf("normalized %d %s", r.FixedNumbers, plural(r.FixedNumbers, "number")))
	}
	if r.MergedRows > 0 {
		parts = append(parts, fmt.Sprintf("merged %d duplicate %s", r.MergedRows, plural(r.MergedRows, "row")))
	}
	if r.DroppedRows > 0 {
		parts = append(parts, fmt.Sprintf("dropped %d invalid %s", r.DroppedRows, plural(r.DroppedRows, "row")))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// GenerateFixes derives a patch list from the rule table in two passes:
// per-row normalize/clean, then duplicate merge over the surviving rows.
// Patches are proposals; nothing is mutated until ApplyFixes. Running
// generate+apply on an already-clean row set yields zero patches.
func GenerateFixes(rows []model.ParsedRow, opts config.Options) ([]model.FixPatch, Report) {
	opts = opts.Normalized()

	var patches []model.FixPatch
	var report Report

	// Pass 1: normalize units and numbers row by row; rows that are still
	// invalid after cleaning get dropped and never reach the merge pass.
	dropped := map[int]bool{}
	cleaned := make([]model.ParsedRow, len(rows))
	for i, original := range rows {
		work := original

		for _, rule := range rowRules {
			if rule.Fix == nil {
				continue
			}
			switch rule.Fix(&work, opts) {
			case fixUnit:
				report.FixedUnits++
			case fixNumber:
				report.FixedNumbers++
			case fixNone:
			}
		}

		if canon := paste.NormalizeUnit(work.Unit); canon != work.Unit {
			work.Unit = canon
			report.FixedUnits++
		}
		if rounded := roundTo(work.UnitPrice, opts.RoundPriceTo); rounded != work.UnitPrice {
			work.UnitPrice = rounded
			report.FixedNumbers++
		}

		if invalidRow(work) {
			patches = append(patches, model.FixPatch{RowIndex: i, DropRow: true})
			report.DroppedRows++
			dropped[i] = true
			continue
		}

		cleaned[i] = work
		if patch := diffRows(original, work); !patch.Empty() {
			patches = append(patches, model.FixPatch{RowIndex: i, Replace: patch})
		}
	}

	// Pass 2: merge duplicates. The first row of each group survives and
	// absorbs the quantities of the rest, using each member's already-cleaned
	// quantity.
	if opts.MergeDuplicates {
		for _, members := range duplicateGroups(rows, dropped) {
			survivor := members[0]
			total := cleaned[survivor].Quantity
			for _, i := range members[1:] {
				total += cleaned[i].Quantity
				mergeInto := survivor
				patches = append(patches, model.FixPatch{RowIndex: i, DropRow: true, MergeInto: &mergeInto})
				report.MergedRows++
			}
			patches = mergeQuantityPatch(patches, survivor, total)
		}
	}

	sort.SliceStable(patches, func(a, b int) bool {
		return patches[a].RowIndex < patches[b].RowIndex
	})
	return patches, report
}

// ApplyFixes applies a patch list deterministically: replaces are applied in
// patch order, a DropRow anywhere for a row wins over any Replace for that
// row, and survivors are renumbered contiguously in original order.
func ApplyFixes(rows []model.ParsedRow, patches []model.FixPatch) []model.ParsedRow {
	sorted := make([]model.FixPatch, len(patches))
	copy(sorted, patches)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].RowIndex < sorted[b].RowIndex
	})

	dropped := map[int]bool{}
	for _, p := range sorted {
		if p.DropRow {
			dropped[p.RowIndex] = true
		}
	}

	work := make([]model.ParsedRow, len(rows))
	copy(work, rows)
	for _, p := range sorted {
		if p.Replace == nil || dropped[p.RowIndex] {
			continue
		}
		if p.RowIndex >= 0 && p.RowIndex < len(work) {
			p.Replace.ApplyTo(&work[p.RowIndex])
		}
	}

	out := make([]model.ParsedRow, 0, len(work))
	for i, row := range work {
		if !dropped[i] {
			out = append(out, row)
		}
	}
	return out
}

// invalidRow reports whether a row is beyond fixing after pass-1 cleaning.
func invalidRow(r model.ParsedRow) bool {
	if strings.TrimSpace(r.PartName) == "" {
		return true
	}
	if math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) || r.Quantity <= 0 {
		return true
	}
	return r.UnitPrice < 0
}

// diffRows builds a partial patch holding only the fields that changed.
func diffRows(before, after model.ParsedRow) *model.RowPatch {
	patch := &model.RowPatch{}
	if before.PartName != after.PartName {
		patch.PartName = &after.PartName
	}
	if before.Description != after.Description {
		patch.Description = &after.Description
	}
	if before.Unit != after.Unit {
		patch.Unit = &after.Unit
	}
	if before.Currency != after.Currency {
		patch.Currency = &after.Currency
	}
	if before.Quantity != after.Quantity {
		patch.Quantity = &after.Quantity
	}
	if before.UnitPrice != after.UnitPrice {
		patch.UnitPrice = &after.UnitPrice
	}
	return patch
}

// mergeQuantityPatch folds the merged total into the survivor's existing
// replace patch, or appends a new one.
func mergeQuantityPatch(patches []model.FixPatch, survivor int, total float64) []model.FixPatch {
	for i := range patches {
		if patches[i].RowIndex == survivor && patches[i].Replace != nil {
			patches[i].Replace.Quantity = &total
			return patches
		}
	}
	return append(patches, model.FixPatch{RowIndex: survivor, Replace: &model.RowPatch{Quantity: &total}})
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
