package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID          Key[Recipe]        `json:"id"`
	Name        string             `json:"name"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

type RecipeIngredient struct {
	IngredientID Key[Ingredient] `json:"ingredient_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// AddIngredient appends an entry. Entries keep their order and are never
// merged, so the same ingredient may appear more than once. The recipe cannot
// check that the ingredient exists; see ShoppingList.CheckReferences.
func (r *Recipe) AddIngredient(ingredientID Key[Ingredient], amount decimal.Decimal) {
	r.Ingredients = append(r.Ingredients, RecipeIngredient{
		IngredientID: ingredientID,
		Amount:       amount,
	})
}

func (r Recipe) clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	return r
}
