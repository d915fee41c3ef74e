package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/recipe-egress/pkg/model"
)

func TestNewKnownAndUnknownTables(t *testing.T) {
	tbl, err := New(model.TableIngredients)
	require.NoError(t, err)
	assert.Equal(t, model.IngredientColumns, tbl.Columns)
	assert.Zero(t, tbl.Len())

	_, err = New("desserts")
	assert.Error(t, err)
}

func TestAppendPreservesOrder(t *testing.T) {
	tbl, err := New(model.TableRecipes)
	require.NoError(t, err)

	for _, id := range []string{"r3", "r1", "r2"} {
		tbl.Append(model.RecipeRow{RecipeID: id}.Record())
	}

	assert.Equal(t, []string{"r3", "r1", "r2"}, tbl.Column("recipe_id"))
}

func TestAppendPadsShortRecords(t *testing.T) {
	tbl := WithColumns("steps", []string{"recipe_id", "step_id", "order", "text"})
	tbl.Append([]string{"r1", "s1"})

	assert.Equal(t, "r1", tbl.Value(0, "recipe_id"))
	assert.Equal(t, "", tbl.Value(0, "order"))
	assert.Equal(t, "", tbl.Value(0, "text"))
}

func TestValueOutOfRange(t *testing.T) {
	tbl, err := New(model.TableSteps)
	require.NoError(t, err)
	tbl.Append(model.StepRow{RecipeID: "r1", StepID: "s1", Order: "1", Text: "Stir"}.Record())

	assert.Equal(t, "", tbl.Value(0, "no_such_column"))
	assert.Equal(t, "", tbl.Value(5, "recipe_id"))
	assert.Equal(t, "", tbl.Value(-1, "recipe_id"))
}

func TestRowID(t *testing.T) {
	tbl, err := New(model.TableInteractions)
	require.NoError(t, err)
	tbl.Append(model.InteractionRow{InteractionID: "x7", UserID: "u1", RecipeID: "r1", Type: "view"}.Record())

	assert.Equal(t, "x7", tbl.RowID(0))
}

func TestAssemblerTablesInArtifactOrder(t *testing.T) {
	a := NewAssembler()

	names := make([]string, 0, 5)
	for _, tbl := range a.Tables() {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"recipe", "ingredients", "steps", "interactions", "users"}, names)
}

func TestAssemblerRecipeIDs(t *testing.T) {
	a := NewAssembler()
	a.AddRecipe(model.RecipeRow{RecipeID: "r1"})
	a.AddRecipe(model.RecipeRow{RecipeID: "r2"})
	a.AddIngredient(model.IngredientRow{RecipeID: "r1", IngredientID: "i1", Name: "salt", Order: "1"})
	a.AddStep(model.StepRow{RecipeID: "r1", StepID: "s1", Order: "1", Text: "Stir"})
	a.AddInteraction(model.InteractionRow{InteractionID: "x1", UserID: "u1", RecipeID: "r1", Type: "view"})
	a.AddUser(model.UserRow{UserID: "u1", Name: "Amy", Email: "amy@example.com"})

	assert.Equal(t, []string{"r1", "r2"}, a.RecipeIDs())
	assert.Equal(t, 1, a.Ingredients().Len())
	assert.Equal(t, 1, a.Steps().Len())
	assert.Equal(t, 1, a.Interactions().Len())
	assert.Equal(t, 1, a.Users().Len())
}
