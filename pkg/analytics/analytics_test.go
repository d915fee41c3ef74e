package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/model"
	"github.com/plateful/recipe-egress/pkg/table"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(zap.NewNop())
	require.NoError(t, err)
	return e
}

func emptyTables(t *testing.T) (recipes, ingredients, steps, interactions, users *table.Table) {
	t.Helper()
	build := func(name string) *table.Table {
		tbl, err := table.New(name)
		require.NoError(t, err)
		return tbl
	}
	return build(model.TableRecipes), build(model.TableIngredients), build(model.TableSteps),
		build(model.TableInteractions), build(model.TableUsers)
}

func addRecipe(t *table.Table, id, difficulty, prep, cook string) {
	t.Append(model.RecipeRow{
		RecipeID: id, Name: "recipe " + id, Servings: "2",
		PrepTimeMin: prep, CookTimeMin: cook, Difficulty: difficulty,
	}.Record())
}

func addIngredient(t *table.Table, recipeID, name string) {
	t.Append(model.IngredientRow{
		RecipeID: recipeID, IngredientID: recipeID + "-" + name, Name: name, Order: "1",
	}.Record())
}

func addInteraction(t *table.Table, userID, recipeID, kind, rating string) {
	t.Append(model.InteractionRow{
		InteractionID: "x", UserID: userID, RecipeID: recipeID, Type: kind, Rating: rating,
	}.Record())
}

func TestNewEngineRequiresLogger(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)
}

func TestComputeEmptyTables(t *testing.T) {
	e := newEngine(t)

	s := e.Compute(emptyTables(t))

	assert.Zero(t, s.RecipeCount)
	assert.Zero(t, s.DistinctUsers)
	assert.Empty(t, s.TopIngredients)
	assert.Empty(t, s.TopRated)
	assert.Zero(t, s.AvgPrepTimeMin)
	assert.Zero(t, s.PrepLikesCorrelation)

	// An empty run still renders a complete report
	report := RenderReport(s)
	assert.Contains(t, report, "Recipe Analytics Summary")
	assert.Contains(t, report, "(none)")
}

func TestComputeTopIngredients(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	addIngredient(ingredients, "r1", "salt")
	addIngredient(ingredients, "r1", "sugar")
	addIngredient(ingredients, "r2", "salt")
	addIngredient(ingredients, "r2", "  ") // blank names never count

	s := e.Compute(recipes, ingredients, steps, interactions, users)

	require.Len(t, s.TopIngredients, 2)
	assert.Equal(t, Entry{Key: "salt", Count: 2}, s.TopIngredients[0])
	assert.Equal(t, Entry{Key: "sugar", Count: 1}, s.TopIngredients[1])
}

func TestComputeAveragesAndDifficulty(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	addRecipe(recipes, "r1", "easy", "10", "20")
	addRecipe(recipes, "r2", "Easy", "20", "40")
	addRecipe(recipes, "r3", "extreme", "not a number", "0")

	s := e.Compute(recipes, ingredients, steps, interactions, users)

	// Unparsable prep contributes 0, so the mean is (10+20+0)/3
	assert.InDelta(t, 10.0, s.AvgPrepTimeMin, 1e-9)
	assert.InDelta(t, 20.0, s.AvgCookTimeMin, 1e-9)

	assert.Equal(t, []Entry{
		{Key: "easy", Count: 2},
		{Key: "unknown", Count: 1},
	}, s.DifficultyDistribution)
}

func TestComputeInteractionRankings(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	addRecipe(recipes, "r1", "easy", "10", "0")
	addRecipe(recipes, "r2", "easy", "20", "0")

	addInteraction(interactions, "u1", "r1", "view", "")
	addInteraction(interactions, "u1", "r1", "like", "")
	addInteraction(interactions, "u2", "r2", "like", "")
	addInteraction(interactions, "u2", "r2", "like", "")
	addInteraction(interactions, "u2", "r2", "cook_attempt", "")
	addInteraction(interactions, "u1", "r1", "rating", "4")
	addInteraction(interactions, "u2", "r1", "rating", "2")
	addInteraction(interactions, "u2", "r2", "rating", "5")

	s := e.Compute(recipes, ingredients, steps, interactions, users)

	assert.Equal(t, []Entry{{Key: "r1", Count: 1}}, s.TopViewed)
	assert.Equal(t, []Entry{{Key: "r2", Count: 2}, {Key: "r1", Count: 1}}, s.TopLiked)
	assert.Equal(t, []Entry{{Key: "r2", Count: 1}}, s.TopAttempted)

	require.Len(t, s.TopRated, 2)
	assert.Equal(t, RatingEntry{RecipeID: "r2", Average: 5, Count: 1}, s.TopRated[0])
	assert.Equal(t, RatingEntry{RecipeID: "r1", Average: 3, Count: 2}, s.TopRated[1])

	assert.Equal(t, 2, s.DistinctUsers)
	assert.Equal(t, []Entry{{Key: "u2", Count: 5}, {Key: "u1", Count: 3}}, s.TopUsersByInteractions)
}

func TestComputePrepLikesCorrelation(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	// Likes scale linearly with prep time, so the correlation is exactly 1
	addRecipe(recipes, "r1", "easy", "10", "0")
	addRecipe(recipes, "r2", "easy", "20", "0")
	addInteraction(interactions, "u1", "r1", "like", "")
	addInteraction(interactions, "u1", "r1", "like", "")
	for i := 0; i < 4; i++ {
		addInteraction(interactions, "u1", "r2", "like", "")
	}

	s := e.Compute(recipes, ingredients, steps, interactions, users)

	assert.InDelta(t, 1.0, s.PrepLikesCorrelation, 1e-9)
}

func TestComputeHighEngagementIngredients(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	// Like counts 1, 3, 5, 7 put the median at 4; only r3 and r4 qualify
	likeCounts := map[string]int{"r1": 1, "r2": 3, "r3": 5, "r4": 7}
	for _, id := range []string{"r1", "r2", "r3", "r4"} {
		addRecipe(recipes, id, "easy", "10", "10")
		for i := 0; i < likeCounts[id]; i++ {
			addInteraction(interactions, "u1", id, "like", "")
		}
	}
	addIngredient(ingredients, "r1", "salt")
	addIngredient(ingredients, "r3", "saffron")
	addIngredient(ingredients, "r4", "saffron")
	addIngredient(ingredients, "r4", "cardamom")

	s := e.Compute(recipes, ingredients, steps, interactions, users)

	assert.Equal(t, []Entry{
		{Key: "saffron", Count: 2},
		{Key: "cardamom", Count: 1},
	}, s.HighEngagementIngredients)

	// All four recipes are in the top-10-liked set, so the affinity list
	// covers every ingredient
	assert.Len(t, s.TopLikedIngredients, 3)
}

func TestComputeUsersByCountry(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	users.Append(model.UserRow{UserID: "u1", Name: "Amy", Email: "amy@example.com", Country: "IN"}.Record())
	users.Append(model.UserRow{UserID: "u2", Name: "Bo", Email: "bo@example.com", Country: "IN"}.Record())
	users.Append(model.UserRow{UserID: "u3", Name: "Cy", Email: "cy@example.com", Country: ""}.Record())

	s := e.Compute(recipes, ingredients, steps, interactions, users)

	assert.Equal(t, []Entry{
		{Key: "IN", Count: 2},
		{Key: "unknown", Count: 1},
	}, s.UsersByCountry)
	assert.Equal(t, 3, s.UserCount)
}

func TestRenderReportSections(t *testing.T) {
	e := newEngine(t)
	recipes, ingredients, steps, interactions, users := emptyTables(t)

	addRecipe(recipes, "r1", "easy", "12", "8")
	addIngredient(ingredients, "r1", "salt")
	addInteraction(interactions, "u1", "r1", "like", "")

	report := RenderReport(e.Compute(recipes, ingredients, steps, interactions, users))

	for _, section := range []string{
		"Summary counts",
		"Top ingredients (top 20)",
		"Average prep time: 12.00 min",
		"Difficulty distribution",
		"Top recipes by likes (top 10)",
		"Average rating per recipe (top 10)",
		"Correlation between prep time and likes: 0.0000",
		"Users by country",
		"Notes",
	} {
		assert.Contains(t, report, section)
	}
	assert.Contains(t, report, "   1. salt - 1")
}
