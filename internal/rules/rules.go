// Package rules holds the data-quality rule table shared by the validator and
// the auto-fix engine. Each rule carries a detect predicate and, where one
// exists, a fix; both components consume the same table so they can never
// drift apart.
package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
)

// fixKind tags what a rule's fix changed, for the auto-fix report.
type fixKind int

const (
	fixNone fixKind = iota
	fixUnit
	fixNumber
)

// junkUnits are tokens that technically fill the unit column but carry no
// information.
var junkUnits = map[string]bool{
	"-":    true,
	"unit": true,
	"ea":   true,
	"qty":  true,
	"n/a":  true,
	"tbd":  true,
	"?":    true,
}

// rowRule is one per-row data-quality rule. Detect runs during validation;
// Fix (when present) runs during auto-fix pass 1 and mutates the working copy.
type rowRule struct {
	Detect  func(r model.ParsedRow, opts config.Options) bool
	Message func(r model.ParsedRow, opts config.Options) string
	Fix     func(r *model.ParsedRow, opts config.Options) fixKind
	Type    model.WarningType
	Field   model.Field
}

var rowRules = []rowRule{
	{
		Type:  model.WarningMissingUnit,
		Field: model.FieldUnit,
		Detect: func(r model.ParsedRow, opts config.Options) bool {
			return opts.RequireUnit && strings.TrimSpace(r.Unit) == ""
		},
		Message: func(r model.ParsedRow, _ config.Options) string {
			return fmt.Sprintf("%q has no unit", r.PartName)
		},
		Fix: func(r *model.ParsedRow, opts config.Options) fixKind {
			if strings.TrimSpace(r.Unit) != "" {
				return fixNone
			}
			r.Unit = opts.DefaultUnit
			return fixUnit
		},
	},
	{
		Type:  model.WarningSuspiciousUnit,
		Field: model.FieldUnit,
		Detect: func(r model.ParsedRow, _ config.Options) bool {
			return junkUnits[strings.ToLower(strings.TrimSpace(r.Unit))]
		},
		Message: func(r model.ParsedRow, _ config.Options) string {
			return fmt.Sprintf("%q has placeholder unit %q", r.PartName, r.Unit)
		},
		Fix: func(r *model.ParsedRow, opts config.Options) fixKind {
			if !junkUnits[strings.ToLower(strings.TrimSpace(r.Unit))] {
				return fixNone
			}
			r.Unit = opts.DefaultUnit
			return fixUnit
		},
	},
	{
		Type:  model.WarningQtyZero,
		Field: model.FieldQuantity,
		Detect: func(r model.ParsedRow, _ config.Options) bool {
			return r.Quantity <= 0
		},
		Message: func(r model.ParsedRow, _ config.Options) string {
			return fmt.Sprintf("%q has quantity %v", r.PartName, r.Quantity)
		},
		Fix: func(r *model.ParsedRow, opts config.Options) fixKind {
			// Clampable only when a positive floor is configured; otherwise
			// the row is invalid and pass 1 drops it.
			if opts.MinQuantity <= 0 || r.Quantity >= opts.MinQuantity {
				return fixNone
			}
			r.Quantity = opts.MinQuantity
			return fixNumber
		},
	},
	{
		Type:  model.WarningLargeQty,
		Field: model.FieldQuantity,
		Detect: func(r model.ParsedRow, opts config.Options) bool {
			return r.Quantity > opts.LargeQty
		},
		Message: func(r model.ParsedRow, opts config.Options) string {
			return fmt.Sprintf("%q has quantity %v above %v", r.PartName, r.Quantity, opts.LargeQty)
		},
		Fix: func(r *model.ParsedRow, opts config.Options) fixKind {
			// Non-finite quantities are invalid, not clampable.
			if math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) || r.Quantity <= opts.MaxQuantity {
				return fixNone
			}
			r.Quantity = opts.MaxQuantity
			return fixNumber
		},
	},
	{
		Type:  model.WarningPriceZero,
		Field: model.FieldPrice,
		Detect: func(r model.ParsedRow, _ config.Options) bool {
			return r.UnitPrice == 0
		},
		Message: func(r model.ParsedRow, _ config.Options) string {
			return fmt.Sprintf("%q has no unit price", r.PartName)
		},
	},
	{
		Type:  model.WarningTinyPrice,
		Field: model.FieldPrice,
		Detect: func(r model.ParsedRow, opts config.Options) bool {
			return r.UnitPrice > 0 && r.UnitPrice < opts.TinyPrice
		},
		Message: func(r model.ParsedRow, opts config.Options) string {
			return fmt.Sprintf("%q has unit price %v below %v", r.PartName, r.UnitPrice, opts.TinyPrice)
		},
	},
	{
		Type:  model.WarningNameTooShort,
		Field: model.FieldName,
		Detect: func(r model.ParsedRow, opts config.Options) bool {
			return len([]rune(strings.TrimSpace(r.PartName))) < opts.MinNameLen
		},
		Message: func(r model.ParsedRow, _ config.Options) string {
			return fmt.Sprintf("part name %q is too short", r.PartName)
		},
	},
}

// duplicateGroups returns the member indices of every case-insensitive
// trimmed name shared by two or more rows, each group in original order,
// groups ordered by their first member. Shared by the duplicate-name rule and
// the merge pass.
func duplicateGroups(rows []model.ParsedRow, skip map[int]bool) [][]int {
	byKey := map[string][]int{}
	var keys []string
	for i, r := range rows {
		if skip[i] {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(r.PartName))
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], i)
	}

	var groups [][]int
	for _, key := range keys {
		if members := byKey[key]; len(members) >= 2 {
			groups = append(groups, members)
		}
	}
	return groups
}

// distinctCurrencies returns the set of non-empty currencies across rows.
func distinctCurrencies(rows []model.ParsedRow) map[string]bool {
	set := map[string]bool{}
	for _, r := range rows {
		if r.Currency != "" {
			set[r.Currency] = true
		}
	}
	return set
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
