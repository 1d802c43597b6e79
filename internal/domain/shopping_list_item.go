package domain

import "github.com/shopspring/decimal"

// ShoppingListItem is one row of the list: buy Amount of an ingredient,
// optionally because a recipe was expanded into the list.
type ShoppingListItem struct {
	ID           Key[ShoppingListItem] `json:"id"`
	IngredientID Key[Ingredient]       `json:"ingredient_id"`
	Amount       decimal.Decimal       `json:"amount"`
	RecipeID     *Key[Recipe]          `json:"recipe_id"`
}

// FromRecipe reports the recipe the row was expanded from. Manually added rows
// return false.
func (i ShoppingListItem) FromRecipe() (Key[Recipe], bool) {
	if i.RecipeID == nil {
		return Key[Recipe]{}, false
	}
	return *i.RecipeID, true
}

func (i ShoppingListItem) clone() ShoppingListItem {
	if i.RecipeID != nil {
		recipeID := *i.RecipeID
		i.RecipeID = &recipeID
	}
	return i
}
