// pkg/validator/validator.go
package validator

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/model"
	"github.com/plateful/recipe-egress/pkg/table"
)

// Validator classifies every row of every table as valid or invalid against
// a fixed per-table rule set. Rules are independent and never short-circuit:
// a row that breaks three rules gets three violations.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a new Validator instance
func NewValidator(logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Validator{logger: logger}, nil
}

// Result bundles every artifact a validation run produces
type Result struct {
	Violations []model.Violation
	Findings   []model.Finding
	Summaries  []model.TableSummary
	Report     *model.ValidationReport
}

// ValidateAll runs the rule sets over every table and tabulates the outcome.
// Table order is preserved throughout the artifacts.
func (v *Validator) ValidateAll(tables []*table.Table) *Result {
	result := &Result{
		Violations: make([]model.Violation, 0),
		Findings:   make([]model.Finding, 0),
		Summaries:  make([]model.TableSummary, 0, len(tables)),
	}

	totals := make(map[string]int, len(tables))
	validCounts := make(map[string]int, len(tables))

	for _, t := range tables {
		invalidRows := 0

		for i := 0; i < t.Len(); i++ {
			messages := v.validateRow(t, i)
			if len(messages) == 0 {
				continue
			}

			invalidRows++
			rowID := t.RowID(i)

			for _, msg := range messages {
				result.Violations = append(result.Violations, model.Violation{
					Table:    t.Name,
					RowIndex: i,
					RowID:    rowID,
					Message:  msg,
				})
			}

			result.Findings = append(result.Findings, model.Finding{
				Table:    t.Name,
				RowIndex: i,
				RowID:    rowID,
				Errors:   messages,
			})
		}

		validCount := t.Len() - invalidRows
		if validCount < 0 {
			validCount = 0
		}

		totals[t.Name] = t.Len()
		validCounts[t.Name] = validCount
		result.Summaries = append(result.Summaries, model.TableSummary{
			Table:      t.Name,
			ValidCount: validCount,
			TotalCount: t.Len(),
		})

		v.logger.Info("Validated table",
			zap.String("table", t.Name),
			zap.Int("total", t.Len()),
			zap.Int("valid", validCount),
			zap.Int("invalid", invalidRows))
	}

	result.Report = &model.ValidationReport{
		GeneratedAt:    time.Now().UTC(),
		Totals:         totals,
		ValidCounts:    validCounts,
		InvalidCount:   len(result.Findings),
		InvalidRecords: result.Findings,
	}

	return result
}

// validateRow dispatches to the rule set for the table
func (v *Validator) validateRow(t *table.Table, row int) []string {
	switch t.Name {
	case model.TableRecipes:
		return validateRecipeRow(t, row)
	case model.TableIngredients:
		return validateIngredientRow(t, row)
	case model.TableSteps:
		return validateStepRow(t, row)
	case model.TableInteractions:
		return validateInteractionRow(t, row)
	case model.TableUsers:
		return validateUserRow(t, row)
	default:
		// Unknown tables carry no rules
		return nil
	}
}
