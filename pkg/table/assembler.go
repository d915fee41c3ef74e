// pkg/table/assembler.go
package table

import "github.com/plateful/recipe-egress/pkg/model"

// Assembler aggregates mapped rows into the five normalized tables,
// preserving source iteration order. Pure aggregation: no invariant
// enforcement happens here.
type Assembler struct {
	recipes      *Table
	ingredients  *Table
	steps        *Table
	interactions *Table
	users        *Table
}

// NewAssembler creates an Assembler with empty tables
func NewAssembler() *Assembler {
	return &Assembler{
		recipes:      WithColumns(model.TableRecipes, model.RecipeColumns),
		ingredients:  WithColumns(model.TableIngredients, model.IngredientColumns),
		steps:        WithColumns(model.TableSteps, model.StepColumns),
		interactions: WithColumns(model.TableInteractions, model.InteractionColumns),
		users:        WithColumns(model.TableUsers, model.UserColumns),
	}
}

// AddRecipe appends a mapped recipe row
func (a *Assembler) AddRecipe(row model.RecipeRow) {
	a.recipes.Append(row.Record())
}

// AddIngredient appends a mapped ingredient row
func (a *Assembler) AddIngredient(row model.IngredientRow) {
	a.ingredients.Append(row.Record())
}

// AddStep appends a mapped step row
func (a *Assembler) AddStep(row model.StepRow) {
	a.steps.Append(row.Record())
}

// AddInteraction appends a mapped interaction row
func (a *Assembler) AddInteraction(row model.InteractionRow) {
	a.interactions.Append(row.Record())
}

// AddUser appends a mapped user row
func (a *Assembler) AddUser(row model.UserRow) {
	a.users.Append(row.Record())
}

// Tables returns the assembled tables in artifact order
func (a *Assembler) Tables() []*Table {
	return []*Table{a.recipes, a.ingredients, a.steps, a.interactions, a.users}
}

// Recipes returns the recipe table
func (a *Assembler) Recipes() *Table { return a.recipes }

// Ingredients returns the ingredients table
func (a *Assembler) Ingredients() *Table { return a.ingredients }

// Steps returns the steps table
func (a *Assembler) Steps() *Table { return a.steps }

// Interactions returns the interactions table
func (a *Assembler) Interactions() *Table { return a.interactions }

// Users returns the users table
func (a *Assembler) Users() *Table { return a.users }

// RecipeIDs projects just the recipe identifiers, in source order. Child
// collection readers key off this.
func (a *Assembler) RecipeIDs() []string {
	return a.recipes.Column("recipe_id")
}
