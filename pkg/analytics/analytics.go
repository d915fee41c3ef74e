// pkg/analytics/analytics.go
package analytics

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/table"
)

// Engine computes descriptive statistics over the assembled tables. It
// consumes the same normalized tables as the validator but is otherwise
// independent of it.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new analytics Engine
func NewEngine(logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Engine{logger: logger}, nil
}

// RatingEntry is one recipe's average rating
type RatingEntry struct {
	RecipeID string
	Average  float64
	Count    int
}

// Summary holds every computed statistic for one run
type Summary struct {
	GeneratedAt time.Time

	RecipeCount      int
	IngredientCount  int
	StepCount        int
	InteractionCount int
	UserCount        int
	DistinctUsers    int

	TopIngredients []Entry

	AvgPrepTimeMin float64
	AvgCookTimeMin float64

	DifficultyDistribution []Entry

	TopViewed    []Entry
	TopLiked     []Entry
	TopAttempted []Entry

	TopRated []RatingEntry

	PrepLikesCorrelation float64

	TopLikedIngredients       []Entry
	HighEngagementIngredients []Entry

	UsersByCountry         []Entry
	TopUsersByInteractions []Entry
}

// Compute derives the full Summary from the five tables. Unparsable numeric
// cells contribute 0. Empty tables produce zero-valued sections, never an
// error.
func (e *Engine) Compute(recipes, ingredients, steps, interactions, users *table.Table) *Summary {
	s := &Summary{
		GeneratedAt:      time.Now().UTC(),
		RecipeCount:      recipes.Len(),
		IngredientCount:  ingredients.Len(),
		StepCount:        steps.Len(),
		InteractionCount: interactions.Len(),
		UserCount:        users.Len(),
	}

	// Ingredient frequency across all rows
	s.TopIngredients = ingredientFrequency(ingredients, nil).Top(20)

	// Mean prep and cook time across all recipes
	s.AvgPrepTimeMin = Mean(numericColumn(recipes, "prep_time_min"))
	s.AvgCookTimeMin = Mean(numericColumn(recipes, "cook_time_min"))

	// Difficulty distribution with an explicit unknown bucket
	difficulty := NewCounter()
	for i := 0; i < recipes.Len(); i++ {
		d := strings.ToLower(strings.TrimSpace(recipes.Value(i, "difficulty")))
		switch d {
		case "easy", "medium", "hard":
			difficulty.Add(d)
		default:
			difficulty.Add("unknown")
		}
	}
	s.DifficultyDistribution = difficulty.Entries()

	// Per-recipe interaction tallies by type
	views := NewCounter()
	likes := NewCounter()
	attempts := NewCounter()
	ratings := make(map[string][]float64)
	ratedOrder := make([]string, 0)
	distinctUsers := make(map[string]bool)
	userActivity := NewCounter()

	for i := 0; i < interactions.Len(); i++ {
		recipeID := interactions.Value(i, "recipe_id")
		if userID := strings.TrimSpace(interactions.Value(i, "user_id")); userID != "" {
			distinctUsers[userID] = true
			userActivity.Add(userID)
		}

		switch strings.ToLower(strings.TrimSpace(interactions.Value(i, "type"))) {
		case "view":
			views.Add(recipeID)
		case "like":
			likes.Add(recipeID)
		case "cook_attempt":
			attempts.Add(recipeID)
		case "rating":
			if _, ok := ratings[recipeID]; !ok {
				ratedOrder = append(ratedOrder, recipeID)
			}
			ratings[recipeID] = append(ratings[recipeID], numeric(interactions.Value(i, "rating")))
		}
	}

	s.DistinctUsers = len(distinctUsers)
	s.TopViewed = views.Top(10)
	s.TopLiked = likes.Top(10)
	s.TopAttempted = attempts.Top(10)
	s.TopUsersByInteractions = userActivity.Top(10)

	// Average rating per recipe, top 10 by average descending; equal
	// averages keep first-rated order
	rated := make([]RatingEntry, 0, len(ratings))
	for _, recipeID := range ratedOrder {
		values := ratings[recipeID]
		rated = append(rated, RatingEntry{
			RecipeID: recipeID,
			Average:  Mean(values),
			Count:    len(values),
		})
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Average > rated[j].Average
	})
	if len(rated) > 10 {
		rated = rated[:10]
	}
	s.TopRated = rated

	// Correlation between prep time and like count across all recipes
	prepSeries := make([]float64, 0, recipes.Len())
	likeSeries := make([]float64, 0, recipes.Len())
	for i := 0; i < recipes.Len(); i++ {
		prepSeries = append(prepSeries, numeric(recipes.Value(i, "prep_time_min")))
		likeSeries = append(likeSeries, float64(likes.Count(recipes.Value(i, "recipe_id"))))
	}
	s.PrepLikesCorrelation = Pearson(prepSeries, likeSeries)

	// Ingredient affinity: top-liked recipe set
	topLikedSet := make(map[string]bool, len(s.TopLiked))
	for _, entry := range s.TopLiked {
		topLikedSet[entry.Key] = true
	}
	s.TopLikedIngredients = ingredientFrequency(ingredients, topLikedSet).Top(20)

	// Ingredient affinity: recipes above the median like count, median
	// taken over recipes with at least one like
	likeCounts := make([]float64, 0)
	for _, entry := range likes.Entries() {
		likeCounts = append(likeCounts, float64(entry.Count))
	}
	median := Median(likeCounts)

	highEngagement := make(map[string]bool)
	for _, entry := range likes.Entries() {
		if float64(entry.Count) > median {
			highEngagement[entry.Key] = true
		}
	}
	s.HighEngagementIngredients = ingredientFrequency(ingredients, highEngagement).Top(20)

	// User demographics
	countries := NewCounter()
	for i := 0; i < users.Len(); i++ {
		country := strings.TrimSpace(users.Value(i, "country"))
		if country == "" {
			country = "unknown"
		}
		countries.Add(country)
	}
	s.UsersByCountry = countries.Entries()

	e.logger.Info("Computed analytics",
		zap.Int("recipes", s.RecipeCount),
		zap.Int("interactions", s.InteractionCount),
		zap.Int("distinct_users", s.DistinctUsers),
		zap.Float64("prep_likes_correlation", s.PrepLikesCorrelation))

	return s
}

// ingredientFrequency counts trimmed, non-empty ingredient names. When
// recipeSet is non-nil only rows whose recipe_id is in the set count.
func ingredientFrequency(ingredients *table.Table, recipeSet map[string]bool) *Counter {
	counter := NewCounter()
	for i := 0; i < ingredients.Len(); i++ {
		if recipeSet != nil && !recipeSet[ingredients.Value(i, "recipe_id")] {
			continue
		}
		name := strings.TrimSpace(ingredients.Value(i, "name"))
		if name == "" {
			continue
		}
		counter.Add(name)
	}
	return counter
}

// numeric parses a cell, contributing 0 for unparsable values
func numeric(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// numericColumn parses a whole column with the same 0 default
func numericColumn(t *table.Table, column string) []float64 {
	values := make([]float64, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		values = append(values, numeric(t.Value(i, column)))
	}
	return values
}
