// Package planner turns a declarative config.Plan into a ShoppingList.
package planner

import (
	"fmt"

	"github.com/nikolayk812/shoppinglist/internal/config"
	"github.com/nikolayk812/shoppinglist/internal/domain"
	"github.com/shopspring/decimal"
)

// Build creates the declared ingredients and recipes, expands every meal into
// the shopping list in declaration order and then appends the extras.
func Build(plan config.Plan, opts ...domain.Option) (*domain.ShoppingList, error) {
	list := domain.NewShoppingList(opts...)

	ingredients := make(map[string]domain.Key[domain.Ingredient], len(plan.Ingredients))
	for _, name := range plan.Ingredients {
		if name == "" {
			return nil, fmt.Errorf("ingredient name is empty")
		}
		if _, ok := ingredients[name]; ok {
			return nil, fmt.Errorf("ingredient %q is declared twice", name)
		}
		ingredients[name] = list.InsertIngredient(name)
	}

	recipes := make(map[string]domain.Key[domain.Recipe], len(plan.Recipes))
	for _, spec := range plan.Recipes {
		if spec.Name == "" {
			return nil, fmt.Errorf("recipe name is empty")
		}
		if _, ok := recipes[spec.Name]; ok {
			return nil, fmt.Errorf("recipe %q is declared twice", spec.Name)
		}

		handle := list.GenerateRecipe(spec.Name)
		for _, entry := range spec.Ingredients {
			key, amount, err := resolveEntry(ingredients, entry)
			if err != nil {
				return nil, fmt.Errorf("recipe %q: %w", spec.Name, err)
			}
			handle.AddIngredient(key, amount)
		}
		recipes[spec.Name] = handle.Key()
	}

	for _, meal := range plan.Meals {
		key, ok := recipes[meal.Recipe]
		if !ok {
			return nil, fmt.Errorf("recipe %q is not declared", meal.Recipe)
		}

		multiplier, err := domain.ParseAmount(meal.Multiplier)
		if err != nil {
			return nil, fmt.Errorf("meal %q: %w", meal.Recipe, err)
		}

		if err := list.AddRecipeToList(key, multiplier); err != nil {
			return nil, fmt.Errorf("list.AddRecipeToList: %w", err)
		}
	}

	for _, extra := range plan.Extras {
		key, amount, err := resolveEntry(ingredients, extra)
		if err != nil {
			return nil, fmt.Errorf("extra: %w", err)
		}
		list.InsertShoppingListItem(key, amount)
	}

	return list, nil
}

func resolveEntry(ingredients map[string]domain.Key[domain.Ingredient], entry config.EntrySpec) (domain.Key[domain.Ingredient], decimal.Decimal, error) {
	key, ok := ingredients[entry.Ingredient]
	if !ok {
		return domain.Key[domain.Ingredient]{}, decimal.Zero, fmt.Errorf("ingredient %q is not declared", entry.Ingredient)
	}

	amount, err := domain.ParseAmount(entry.Amount)
	if err != nil {
		return domain.Key[domain.Ingredient]{}, decimal.Zero, fmt.Errorf("ingredient %q: %w", entry.Ingredient, err)
	}

	// recipe entries and extras are quantities to buy; multipliers may be anything
	if amount.Sign() <= 0 {
		return domain.Key[domain.Ingredient]{}, decimal.Zero, fmt.Errorf("ingredient %q: amount[%s] must be positive", entry.Ingredient, amount)
	}

	return key, amount, nil
}
