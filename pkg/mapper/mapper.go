// pkg/mapper/mapper.go
package mapper

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/model"
)

// RowMapper converts raw source documents into normalized rows. Mapping is
// lenient on purpose: it never fails, and malformed values survive into the
// row so the validation stage can flag the original text. Detection of
// genuinely invalid data is the validator's job, not the mapper's.
type RowMapper struct {
	logger *zap.Logger
}

// NewRowMapper creates a new RowMapper
func NewRowMapper(logger *zap.Logger) *RowMapper {
	return &RowMapper{logger: logger}
}

// preferID returns the explicit id field from the document body when
// present, falling back to the store-assigned document identifier.
func preferID(doc model.Document, field string) string {
	if id := asString(doc.Fields[field]); id != "" {
		return id
	}
	return doc.ID
}

// MapRecipe maps one recipe document to a normalized row
func (m *RowMapper) MapRecipe(doc model.Document) model.RecipeRow {
	prep := numericOrZero(doc.Fields["prep_time_min"], doc.Has("prep_time_min"))
	cook := numericOrZero(doc.Fields["cook_time_min"], doc.Has("cook_time_min"))

	// Explicit total wins when numeric; otherwise derive prep + cook
	total := ""
	if f, ok := asFloat(doc.Fields["total_time_min"]); doc.Has("total_time_min") && ok {
		total = formatNumber(f)
	} else {
		if doc.Has("total_time_min") {
			m.logger.Debug("Non-numeric total_time_min, deriving from prep and cook",
				zap.String("document", doc.ID))
		}
		p, _ := strconv.ParseFloat(prep, 64)
		c, _ := strconv.ParseFloat(cook, 64)
		total = formatNumber(p + c)
	}

	return model.RecipeRow{
		RecipeID:     preferID(doc, "recipe_id"),
		Name:         asString(doc.Fields["name"]),
		Description:  asString(doc.Fields["description"]),
		Servings:     numericOrRaw(doc.Fields["servings"], doc.Has("servings")),
		PrepTimeMin:  prep,
		CookTimeMin:  cook,
		TotalTimeMin: total,
		Difficulty:   asString(doc.Fields["difficulty"]),
		Cuisine:      asString(doc.Fields["cuisine"]),
		Tags:         joinTags(doc.Fields["tags"]),
		AuthorUserID: asString(doc.Fields["author_user_id"]),
		CreatedAt:    asTimestamp(doc.Fields["created_at"]),
	}
}

// MapIngredient maps one ingredient sub-document to a normalized row.
// index is the zero-based position within the parent's sub-collection and
// supplies the 1-based order when the document carries none.
func (m *RowMapper) MapIngredient(recipeID string, index int, doc model.Document) model.IngredientRow {
	order := strconv.Itoa(index + 1)
	if doc.Has("order") {
		order = numericOrRaw(doc.Fields["order"], true)
	}

	return model.IngredientRow{
		RecipeID:     recipeID,
		IngredientID: preferID(doc, "ingredient_id"),
		Name:         asString(doc.Fields["name"]),
		Quantity:     numericOrRaw(doc.Fields["quantity"], doc.Has("quantity")),
		Unit:         asString(doc.Fields["unit"]),
		Notes:        asString(doc.Fields["notes"]),
		Order:        order,
	}
}

// MapStep maps one step sub-document to a normalized row. Step order is
// caller-assigned in the source and passes through for validation.
func (m *RowMapper) MapStep(recipeID string, doc model.Document) model.StepRow {
	return model.StepRow{
		RecipeID: recipeID,
		StepID:   preferID(doc, "step_id"),
		Order:    numericOrRaw(doc.Fields["order"], doc.Has("order")),
		Text:     asString(doc.Fields["text"]),
	}
}

// MapInteraction maps one interaction document to a normalized row
func (m *RowMapper) MapInteraction(doc model.Document) model.InteractionRow {
	return model.InteractionRow{
		InteractionID:  preferID(doc, "interaction_id"),
		UserID:         asString(doc.Fields["user_id"]),
		RecipeID:       asString(doc.Fields["recipe_id"]),
		Type:           asString(doc.Fields["type"]),
		Rating:         numericOrRaw(doc.Fields["rating"], doc.Has("rating")),
		DifficultyUsed: asString(doc.Fields["difficulty_used"]),
		Source:         asString(doc.Fields["source"]),
		CreatedAt:      asTimestamp(doc.Fields["created_at"]),
	}
}

// MapUser maps one user document to a normalized row
func (m *RowMapper) MapUser(doc model.Document) model.UserRow {
	return model.UserRow{
		UserID:    preferID(doc, "user_id"),
		Name:      asString(doc.Fields["name"]),
		Email:     asString(doc.Fields["email"]),
		Country:   asString(doc.Fields["country"]),
		CreatedAt: asTimestamp(doc.Fields["created_at"]),
	}
}
