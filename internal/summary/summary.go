// Package summary combines shopping list rows per ingredient for display.
// The aggregate itself keeps every row separate.
package summary

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/shoppinglist/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Line struct {
	IngredientID domain.Key[domain.Ingredient]
	Name         string
	Amount       decimal.Decimal
	// Recipes lists every recipe that contributed, in first-seen order.
	Recipes []domain.Key[domain.Recipe]
	// Manual is set when at least one row was added by hand.
	Manual bool
}

// Totals sums the list's rows per ingredient and orders the lines by
// ingredient name using the collation rules of tag.
func Totals(list *domain.ShoppingList, tag language.Tag) ([]Line, error) {
	var lines []Line
	index := make(map[domain.Key[domain.Ingredient]]int)

	for item := range list.ShoppingListItems() {
		i, ok := index[item.IngredientID]
		if !ok {
			ingredient, err := list.Ingredient(item.IngredientID)
			if err != nil {
				return nil, fmt.Errorf("item[%s]: %w", item.ID, err)
			}

			i = len(lines)
			index[item.IngredientID] = i
			lines = append(lines, Line{
				IngredientID: ingredient.ID,
				Name:         ingredient.Name,
				Amount:       decimal.Zero,
			})
		}

		line := &lines[i]
		line.Amount = line.Amount.Add(item.Amount)

		if recipeID, ok := item.FromRecipe(); ok {
			if !slices.Contains(line.Recipes, recipeID) {
				line.Recipes = append(line.Recipes, recipeID)
			}
		} else {
			line.Manual = true
		}
	}

	c := collate.New(tag, collate.IgnoreCase)
	slices.SortStableFunc(lines, func(a, b Line) int {
		return c.CompareString(a.Name, b.Name)
	})

	return lines, nil
}
