package shopping

import (
	"context"

	"github.com/apex/log"

	"recipe-finder/internal/recipe"
)

// DetailsFetcher resolves a recipe id to its full detail. It is satisfied by
// spoonacular.Client.
type DetailsFetcher interface {
	GetDetails(ctx context.Context, id int64) (recipe.Detail, bool)
}

// Generator derives shopping list lines from selected recipes.
type Generator struct {
	recipes DetailsFetcher
	lists   *Repository
}

// NewGenerator creates a new Generator.
func NewGenerator(recipes DetailsFetcher, lists *Repository) *Generator {
	return &Generator{recipes: recipes, lists: lists}
}

// Generate fetches each recipe in order and appends one line per ingredient
// to the account's list. Recipes that cannot be resolved are skipped. All
// lines are committed together; the number appended is returned.
func (g *Generator) Generate(ctx context.Context, accountID int64, recipeIDs []int64) (int, error) {
	var items []Item
	skipped := 0
	for _, id := range recipeIDs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		detail, ok := g.recipes.GetDetails(ctx, id)
		if !ok {
			skipped++
			log.WithFields(log.Fields{"account_id": accountID, "recipe_id": id}).Warn("skipping recipe without details")
			continue
		}
		items = append(items, ItemsFromRecipe(detail)...)
	}

	if err := g.lists.For(accountID).Append(ctx, items); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"account_id": accountID,
		"recipes":    len(recipeIDs),
		"skipped":    skipped,
		"items":      len(items),
	}).Info("shopping list generated")
	return len(items), nil
}

// ItemsFromRecipe maps every ingredient of a recipe to a list line.
// Duplicate ingredients are kept as separate lines.
func ItemsFromRecipe(d recipe.Detail) []Item {
	items := make([]Item, 0, len(d.ExtendedIngredients))
	for _, ing := range d.ExtendedIngredients {
		items = append(items, Item{
			Ingredient: ing.Original,
			Quantity:   ing.Quantity(),
		})
	}
	return items
}
