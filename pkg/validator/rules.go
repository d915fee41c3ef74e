// pkg/validator/rules.go
package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/plateful/recipe-egress/pkg/table"
)

var (
	difficulties     = map[string]bool{"easy": true, "medium": true, "hard": true}
	interactionTypes = map[string]bool{"view": true, "like": true, "cook_attempt": true, "rating": true}
)

// blank reports whether a value is empty after trimming
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseNumber attempts to read a cell as a number
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func validateRecipeRow(t *table.Table, row int) []string {
	var messages []string

	if blank(t.Value(row, "recipe_id")) {
		messages = append(messages, "missing recipe_id")
	}
	if blank(t.Value(row, "name")) {
		messages = append(messages, "missing name")
	}

	if servings := t.Value(row, "servings"); true {
		f, ok := parseNumber(servings)
		if !ok || f < 1 {
			messages = append(messages, fmt.Sprintf("servings must be a number >= 1 (got %q)", servings))
		}
	}

	// Non-numeric times are left for the mapper's default, not re-flagged;
	// only a value that parses and is negative is a violation
	for _, col := range []string{"prep_time_min", "cook_time_min"} {
		raw := t.Value(row, col)
		if f, ok := parseNumber(raw); ok && f < 0 {
			messages = append(messages, fmt.Sprintf("%s must be >= 0 (got %q)", col, raw))
		}
	}

	difficulty := strings.ToLower(strings.TrimSpace(t.Value(row, "difficulty")))
	if difficulty == "" {
		messages = append(messages, "missing difficulty")
	} else if !difficulties[difficulty] {
		messages = append(messages, fmt.Sprintf("invalid difficulty %q (want easy, medium or hard)", t.Value(row, "difficulty")))
	}

	return messages
}

func validateIngredientRow(t *table.Table, row int) []string {
	var messages []string

	if blank(t.Value(row, "recipe_id")) {
		messages = append(messages, "missing recipe_id")
	}
	if blank(t.Value(row, "name")) {
		messages = append(messages, "missing name")
	}

	// Quantity is optional; when present it must be a non-negative number
	if quantity := t.Value(row, "quantity"); !blank(quantity) {
		f, ok := parseNumber(quantity)
		if !ok || f < 0 {
			messages = append(messages, fmt.Sprintf("quantity must be a number >= 0 (got %q)", quantity))
		}
	}

	return messages
}

func validateStepRow(t *table.Table, row int) []string {
	var messages []string

	if blank(t.Value(row, "recipe_id")) {
		messages = append(messages, "missing recipe_id")
	}
	if blank(t.Value(row, "text")) {
		messages = append(messages, "missing text")
	}

	// Non-numeric, fractional, zero and negative order values all land on
	// the same message, echoing the offending raw value
	order := t.Value(row, "order")
	f, ok := parseNumber(order)
	if !ok || f != math.Trunc(f) || f < 1 {
		messages = append(messages, fmt.Sprintf("order must be an integer >= 1 (got %q)", order))
	}

	return messages
}

func validateInteractionRow(t *table.Table, row int) []string {
	var messages []string

	for _, col := range []string{"interaction_id", "user_id", "recipe_id"} {
		if blank(t.Value(row, col)) {
			messages = append(messages, "missing "+col)
		}
	}

	interactionType := strings.ToLower(strings.TrimSpace(t.Value(row, "type")))
	if interactionType == "" {
		messages = append(messages, "missing type")
	} else if !interactionTypes[interactionType] {
		messages = append(messages, fmt.Sprintf("invalid type %q (want view, like, cook_attempt or rating)", t.Value(row, "type")))
	}

	// The range check only runs when the numeric check passed, so one bad
	// rating yields exactly one of the two messages
	if rating := t.Value(row, "rating"); !blank(rating) {
		f, ok := parseNumber(rating)
		if !ok {
			messages = append(messages, fmt.Sprintf("rating must be a number (got %q)", rating))
		} else if f < 0 || f > 5 {
			messages = append(messages, fmt.Sprintf("rating must be between 0 and 5 (got %q)", rating))
		}
	}

	return messages
}

func validateUserRow(t *table.Table, row int) []string {
	var messages []string

	if blank(t.Value(row, "user_id")) {
		messages = append(messages, "missing user_id")
	}
	if blank(t.Value(row, "name")) {
		messages = append(messages, "missing name")
	}

	email := strings.TrimSpace(t.Value(row, "email"))
	if email == "" || !strings.Contains(email, "@") {
		messages = append(messages, fmt.Sprintf("invalid email (got %q)", t.Value(row, "email")))
	}

	return messages
}
