package domain

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serialisable state of a ShoppingList. Keys are encoded as
// bare UUIDs.
type Snapshot struct {
	Ingredients  map[Key[Ingredient]]Ingredient `json:"ingredients"`
	Recipes      map[Key[Recipe]]Recipe         `json:"recipes"`
	ShoppingList []ShoppingListItem             `json:"shopping_list"`
}

func (l *ShoppingList) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := Snapshot{
		Ingredients:  make(map[Key[Ingredient]]Ingredient, len(l.ingredients)),
		Recipes:      make(map[Key[Recipe]]Recipe, len(l.recipes)),
		ShoppingList: make([]ShoppingListItem, 0, len(l.items)),
	}

	for key, ingredient := range l.ingredients {
		snap.Ingredients[key] = ingredient
	}
	for key, recipe := range l.recipes {
		snap.Recipes[key] = recipe.clone()
	}
	for _, item := range l.items {
		snap.ShoppingList = append(snap.ShoppingList, item.clone())
	}

	return snap
}

// Restore rebuilds an aggregate from a snapshot, e.g. one loaded from storage.
// Cross references are not checked; call CheckReferences for that.
func Restore(snap Snapshot, opts ...Option) (*ShoppingList, error) {
	l := NewShoppingList(opts...)

	for key, ingredient := range snap.Ingredients {
		if key != ingredient.ID {
			return nil, fmt.Errorf("ingredient[%s] is stored under key %s", ingredient.ID, key)
		}
		l.ingredients[key] = ingredient
	}

	for key, recipe := range snap.Recipes {
		if key != recipe.ID {
			return nil, fmt.Errorf("recipe[%s] is stored under key %s", recipe.ID, key)
		}
		recipe = recipe.clone()
		l.recipes[key] = &recipe
	}

	seen := make(map[Key[ShoppingListItem]]struct{}, len(snap.ShoppingList))
	l.items = make([]ShoppingListItem, 0, len(snap.ShoppingList))
	for _, item := range snap.ShoppingList {
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("item[%s] is duplicated", item.ID)
		}
		seen[item.ID] = struct{}{}
		l.items = append(l.items, item.clone())
	}

	return l, nil
}

func (l *ShoppingList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Snapshot())
}

func (l *ShoppingList) UnmarshalJSON(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	restored, err := Restore(snap)
	if err != nil {
		return fmt.Errorf("Restore: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.init()
	l.ingredients = restored.ingredients
	l.recipes = restored.recipes
	l.items = restored.items

	return nil
}

// Amounts are written as JSON numbers using the exact decimal text. Reading
// accepts numbers and quoted strings.
func (e RecipeIngredient) MarshalJSON() ([]byte, error) {
	type entry RecipeIngredient
	return json.Marshal(struct {
		entry
		Amount json.Number `json:"amount"`
	}{entry: entry(e), Amount: json.Number(e.Amount.String())})
}

func (i ShoppingListItem) MarshalJSON() ([]byte, error) {
	type item ShoppingListItem
	return json.Marshal(struct {
		item
		Amount json.Number `json:"amount"`
	}{item: item(i), Amount: json.Number(i.Amount.String())})
}
