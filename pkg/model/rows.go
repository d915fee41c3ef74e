// pkg/model/rows.go
package model

// Table names used across the pipeline. Artifact files are named after these.
const (
	TableRecipes      = "recipe"
	TableIngredients  = "ingredients"
	TableSteps        = "steps"
	TableInteractions = "interactions"
	TableUsers        = "users"
)

// Column layouts for the normalized tables. Order matters: it is the CSV
// column order and the order Record() emits values in.
var (
	RecipeColumns = []string{
		"recipe_id", "name", "description", "servings",
		"prep_time_min", "cook_time_min", "total_time_min",
		"difficulty", "cuisine", "tags", "author_user_id", "created_at",
	}
	IngredientColumns = []string{
		"recipe_id", "ingredient_id", "name", "quantity", "unit", "notes", "order",
	}
	StepColumns = []string{
		"recipe_id", "step_id", "order", "text",
	}
	InteractionColumns = []string{
		"interaction_id", "user_id", "recipe_id", "type",
		"rating", "difficulty_used", "source", "created_at",
	}
	UserColumns = []string{
		"user_id", "name", "email", "country", "created_at",
	}
)

// Columns returns the column layout for a table name, or nil for an
// unknown table.
func Columns(table string) []string {
	switch table {
	case TableRecipes:
		return RecipeColumns
	case TableIngredients:
		return IngredientColumns
	case TableSteps:
		return StepColumns
	case TableInteractions:
		return InteractionColumns
	case TableUsers:
		return UserColumns
	default:
		return nil
	}
}

// IDColumn returns the best-effort natural key column for a table.
func IDColumn(table string) string {
	switch table {
	case TableRecipes:
		return "recipe_id"
	case TableIngredients:
		return "ingredient_id"
	case TableSteps:
		return "step_id"
	case TableInteractions:
		return "interaction_id"
	case TableUsers:
		return "user_id"
	default:
		return ""
	}
}

// Normalized rows keep every field as its serialized string form. Mapping is
// deliberately lenient: a malformed source value passes through so the
// validation stage can report the original text, not a sanitized one.

// RecipeRow is one normalized recipe record.
type RecipeRow struct {
	RecipeID     string
	Name         string
	Description  string
	Servings     string
	PrepTimeMin  string
	CookTimeMin  string
	TotalTimeMin string
	Difficulty   string
	Cuisine      string
	Tags         string
	AuthorUserID string
	CreatedAt    string
}

// Record returns the row values in RecipeColumns order.
func (r RecipeRow) Record() []string {
	return []string{
		r.RecipeID, r.Name, r.Description, r.Servings,
		r.PrepTimeMin, r.CookTimeMin, r.TotalTimeMin,
		r.Difficulty, r.Cuisine, r.Tags, r.AuthorUserID, r.CreatedAt,
	}
}

// IngredientRow is one normalized ingredient record, scoped to its recipe.
type IngredientRow struct {
	RecipeID     string
	IngredientID string
	Name         string
	Quantity     string
	Unit         string
	Notes        string
	Order        string
}

// Record returns the row values in IngredientColumns order.
func (r IngredientRow) Record() []string {
	return []string{r.RecipeID, r.IngredientID, r.Name, r.Quantity, r.Unit, r.Notes, r.Order}
}

// StepRow is one normalized preparation step, scoped to its recipe.
type StepRow struct {
	RecipeID string
	StepID   string
	Order    string
	Text     string
}

// Record returns the row values in StepColumns order.
func (r StepRow) Record() []string {
	return []string{r.RecipeID, r.StepID, r.Order, r.Text}
}

// InteractionRow is one normalized user/recipe interaction.
type InteractionRow struct {
	InteractionID  string
	UserID         string
	RecipeID       string
	Type           string
	Rating         string
	DifficultyUsed string
	Source         string
	CreatedAt      string
}

// Record returns the row values in InteractionColumns order.
func (r InteractionRow) Record() []string {
	return []string{
		r.InteractionID, r.UserID, r.RecipeID, r.Type,
		r.Rating, r.DifficultyUsed, r.Source, r.CreatedAt,
	}
}

// UserRow is one normalized user record.
type UserRow struct {
	UserID    string
	Name      string
	Email     string
	Country   string
	CreatedAt string
}

// Record returns the row values in UserColumns order.
func (r UserRow) Record() []string {
	return []string{r.UserID, r.Name, r.Email, r.Country, r.CreatedAt}
}
