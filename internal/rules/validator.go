package rules

import (
	"fmt"

	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
)

// Validate runs the rule table over coerced rows and returns every finding.
// Rules fire independently, so one row can carry several warnings. Warnings
// reference row indices at validation time; apply fixes first, then
// re-validate, never the other way around.
func Validate(rows []model.ParsedRow, opts config.Options) []model.ValidationWarning {
	opts = opts.Normalized()

	var warnings []model.ValidationWarning
	for i, row := range rows {
		for _, rule := range rowRules {
			if !rule.Detect(row, opts) {
				continue
			}
			field := rule.Field
			warnings = append(warnings, model.ValidationWarning{
				Type:     rule.Type,
				Message:  rule.Message(row, opts),
				RowIndex: i,
				Field:    &field,
			})
		}
	}

	// Set rules look across the whole row set; every participating row is
	// flagged, not just the second occurrence.
	for _, members := range duplicateGroups(rows, nil) {
		for _, i := range members {
			field := model.FieldName
			warnings = append(warnings, model.ValidationWarning{
				Type:     model.WarningDuplicateName,
				Message:  fmt.Sprintf("%q appears %d times", rows[i].PartName, len(members)),
				RowIndex: i,
				Field:    &field,
			})
		}
	}

	if currencies := distinctCurrencies(rows); len(currencies) > 1 {
		for i, row := range rows {
			if row.Currency == "" {
				continue
			}
			warnings = append(warnings, model.ValidationWarning{
				Type:     model.WarningMixedCurrency,
				Message:  fmt.Sprintf("%q is priced in %s while other rows use a different currency", row.PartName, row.Currency),
				RowIndex: i,
			})
		}
	}

	return warnings
}
