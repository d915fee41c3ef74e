// pkg/analytics/report.go
package analytics

import (
	"fmt"
	"strings"
	"time"
)

// RenderReport formats a Summary as the human-readable analytics report.
// Section order is fixed; the report is written once, never updated.
func RenderReport(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recipe Analytics Summary\n")
	fmt.Fprintf(&b, "Generated at: %s\n", s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 40))

	fmt.Fprintf(&b, "Summary counts\n")
	fmt.Fprintf(&b, "  recipes:      %d\n", s.RecipeCount)
	fmt.Fprintf(&b, "  ingredients:  %d\n", s.IngredientCount)
	fmt.Fprintf(&b, "  steps:        %d\n", s.StepCount)
	fmt.Fprintf(&b, "  interactions: %d\n", s.InteractionCount)
	fmt.Fprintf(&b, "  users:        %d\n", s.UserCount)
	fmt.Fprintf(&b, "  distinct interacting users: %d\n\n", s.DistinctUsers)

	writeEntries(&b, "Top ingredients (top 20)", s.TopIngredients)

	fmt.Fprintf(&b, "Average prep time: %.2f min\n", s.AvgPrepTimeMin)
	fmt.Fprintf(&b, "Average cook time: %.2f min\n\n", s.AvgCookTimeMin)

	writeEntries(&b, "Difficulty distribution", s.DifficultyDistribution)

	writeEntries(&b, "Top recipes by views (top 10)", s.TopViewed)
	writeEntries(&b, "Top recipes by likes (top 10)", s.TopLiked)
	writeEntries(&b, "Top recipes by cook attempts (top 10)", s.TopAttempted)

	fmt.Fprintf(&b, "Average rating per recipe (top 10)\n")
	if len(s.TopRated) == 0 {
		fmt.Fprintf(&b, "  (none)\n")
	}
	for i, entry := range s.TopRated {
		fmt.Fprintf(&b, "  %2d. %s - %.2f (%d ratings)\n", i+1, entry.RecipeID, entry.Average, entry.Count)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "Correlation between prep time and likes: %.4f\n\n", s.PrepLikesCorrelation)

	writeEntries(&b, "Top ingredients among top-liked recipes (top 20)", s.TopLikedIngredients)
	writeEntries(&b, "Top ingredients among high-engagement recipes (top 20)", s.HighEngagementIngredients)

	writeEntries(&b, "Users by country", s.UsersByCountry)
	writeEntries(&b, "Top users by interactions (top 10)", s.TopUsersByInteractions)

	fmt.Fprintf(&b, "Notes\n")
	fmt.Fprintf(&b, "  - Counts come from raw interaction events; no deduplication is applied.\n")
	fmt.Fprintf(&b, "  - High-engagement recipes are those above the median like count\n")
	fmt.Fprintf(&b, "    among recipes with at least one like.\n")
	fmt.Fprintf(&b, "  - Unparsable numeric fields contribute 0 to averages and series.\n")

	return b.String()
}

// writeEntries renders one ranked section
func writeEntries(b *strings.Builder, title string, entries []Entry) {
	fmt.Fprintf(b, "%s\n", title)
	if len(entries) == 0 {
		fmt.Fprintf(b, "  (none)\n")
	}
	for i, entry := range entries {
		fmt.Fprintf(b, "  %2d. %s - %d\n", i+1, entry.Key, entry.Count)
	}
	fmt.Fprintf(b, "\n")
}
