package domain

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShoppingList is the aggregate root owning every ingredient, recipe and
// shopping list row. Entities are only created, read and changed through it.
// It is safe for concurrent use. The zero value is an empty list ready to use.
type ShoppingList struct {
	mu    sync.RWMutex
	newID func() uuid.UUID

	ingredients map[Key[Ingredient]]Ingredient
	recipes     map[Key[Recipe]]*Recipe
	items       []ShoppingListItem
}

type Option func(*ShoppingList)

// WithIDSource replaces uuid.New as the identifier provider. The provider must
// never return the same value twice.
func WithIDSource(newID func() uuid.UUID) Option {
	return func(l *ShoppingList) {
		l.newID = newID
	}
}

func NewShoppingList(opts ...Option) *ShoppingList {
	l := &ShoppingList{
		newID:       uuid.New,
		ingredients: make(map[Key[Ingredient]]Ingredient),
		recipes:     make(map[Key[Recipe]]*Recipe),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// init must be called with the write lock held.
func (l *ShoppingList) init() {
	if l.newID == nil {
		l.newID = uuid.New
	}
	if l.ingredients == nil {
		l.ingredients = make(map[Key[Ingredient]]Ingredient)
	}
	if l.recipes == nil {
		l.recipes = make(map[Key[Recipe]]*Recipe)
	}
}

func (l *ShoppingList) InsertIngredient(name string) Key[Ingredient] {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.init()

	key := KeyOf[Ingredient](l.newID())
	l.ingredients[key] = Ingredient{ID: key, Name: name}

	return key
}

func (l *ShoppingList) Ingredient(key Key[Ingredient]) (Ingredient, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ingredient, ok := l.ingredients[key]
	if !ok {
		return Ingredient{}, fmt.Errorf("ingredient[%s]: %w", key, ErrNotFound)
	}

	return ingredient, nil
}

// Ingredients yields every ingredient in no particular order. The sequence
// reads a copy taken when iteration starts.
func (l *ShoppingList) Ingredients() iter.Seq[Ingredient] {
	return func(yield func(Ingredient) bool) {
		l.mu.RLock()
		ingredients := slices.Collect(maps.Values(l.ingredients))
		l.mu.RUnlock()

		for _, ingredient := range ingredients {
			if !yield(ingredient) {
				return
			}
		}
	}
}

// GenerateRecipe stores a new empty recipe and returns a handle for filling it.
func (l *ShoppingList) GenerateRecipe(name string) *RecipeHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.init()

	recipe := &Recipe{
		ID:   KeyOf[Recipe](l.newID()),
		Name: name,
	}
	l.recipes[recipe.ID] = recipe

	return &RecipeHandle{list: l, key: recipe.ID}
}

func (l *ShoppingList) Recipe(key Key[Recipe]) (Recipe, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	recipe, ok := l.recipes[key]
	if !ok {
		return Recipe{}, fmt.Errorf("recipe[%s]: %w", key, ErrNotFound)
	}

	return recipe.clone(), nil
}

func (l *ShoppingList) RecipeMut(key Key[Recipe]) (*RecipeHandle, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.recipes[key]; !ok {
		return nil, fmt.Errorf("recipe[%s]: %w", key, ErrNotFound)
	}

	return &RecipeHandle{list: l, key: key}, nil
}

// Recipes yields a copy of every recipe in no particular order.
func (l *ShoppingList) Recipes() iter.Seq[Recipe] {
	return func(yield func(Recipe) bool) {
		l.mu.RLock()
		recipes := make([]Recipe, 0, len(l.recipes))
		for _, recipe := range l.recipes {
			recipes = append(recipes, recipe.clone())
		}
		l.mu.RUnlock()

		for _, recipe := range recipes {
			if !yield(recipe) {
				return
			}
		}
	}
}

// InsertShoppingListItem appends a manually added row.
func (l *ShoppingList) InsertShoppingListItem(ingredientID Key[Ingredient], amount decimal.Decimal) Key[ShoppingListItem] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.appendItem(ingredientID, amount, nil)
}

// AddRecipeToList expands the recipe into the list: one new row per recipe
// entry, in recipe order, with the amount scaled by multiplier. Existing rows
// are never merged with the new ones and the recipe is left unchanged.
func (l *ShoppingList) AddRecipeToList(recipeID Key[Recipe], multiplier decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	recipe, ok := l.recipes[recipeID]
	if !ok {
		return fmt.Errorf("recipe[%s]: %w", recipeID, ErrNotFound)
	}

	for _, entry := range recipe.Ingredients {
		l.appendItem(entry.IngredientID, scale(entry.Amount, multiplier), &recipeID)
	}

	return nil
}

// ShoppingListItems yields rows in insertion order.
func (l *ShoppingList) ShoppingListItems() iter.Seq[ShoppingListItem] {
	return func(yield func(ShoppingListItem) bool) {
		l.mu.RLock()
		items := make([]ShoppingListItem, 0, len(l.items))
		for _, item := range l.items {
			items = append(items, item.clone())
		}
		l.mu.RUnlock()

		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

type Counts struct {
	Ingredients int
	Recipes     int
	Items       int
}

func (l *ShoppingList) Len() Counts {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Counts{
		Ingredients: len(l.ingredients),
		Recipes:     len(l.recipes),
		Items:       len(l.items),
	}
}

// CheckReferences reports every recipe entry and shopping list row pointing at
// an ingredient or recipe the aggregate does not hold. Nothing validates these
// references when they are added.
func (l *ShoppingList) CheckReferences() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var errs []error

	for _, recipe := range l.recipes {
		for i, entry := range recipe.Ingredients {
			if _, ok := l.ingredients[entry.IngredientID]; !ok {
				errs = append(errs, fmt.Errorf("recipe[%s] entry %d: ingredient[%s]: %w",
					recipe.ID, i, entry.IngredientID, ErrNotFound))
			}
		}
	}

	for _, item := range l.items {
		if _, ok := l.ingredients[item.IngredientID]; !ok {
			errs = append(errs, fmt.Errorf("item[%s]: ingredient[%s]: %w", item.ID, item.IngredientID, ErrNotFound))
		}
		if recipeID, ok := item.FromRecipe(); ok {
			if _, ok := l.recipes[recipeID]; !ok {
				errs = append(errs, fmt.Errorf("item[%s]: recipe[%s]: %w", item.ID, recipeID, ErrNotFound))
			}
		}
	}

	return errors.Join(errs...)
}

// appendItem must be called with the write lock held.
func (l *ShoppingList) appendItem(ingredientID Key[Ingredient], amount decimal.Decimal, recipeID *Key[Recipe]) Key[ShoppingListItem] {
	l.init()

	item := ShoppingListItem{
		ID:           KeyOf[ShoppingListItem](l.newID()),
		IngredientID: ingredientID,
		Amount:       amount,
	}
	if recipeID != nil {
		id := *recipeID
		item.RecipeID = &id
	}

	l.items = append(l.items, item)

	return item.ID
}

// RecipeHandle edits a recipe stored in a ShoppingList without the caller
// looking it up again. Every call resolves the recipe by key under the
// aggregate lock. Once the recipe is gone, e.g. after the list was replaced by
// UnmarshalJSON, edits are dropped and Err reports ErrNotFound.
type RecipeHandle struct {
	list *ShoppingList
	key  Key[Recipe]
	err  error
}

func (h *RecipeHandle) Key() Key[Recipe] {
	return h.key
}

// AddIngredient appends an entry to the stored recipe. It does nothing after
// the handle has failed once.
func (h *RecipeHandle) AddIngredient(ingredientID Key[Ingredient], amount decimal.Decimal) *RecipeHandle {
	h.list.mu.Lock()
	defer h.list.mu.Unlock()

	if h.err != nil {
		return h
	}

	recipe, ok := h.list.recipes[h.key]
	if !ok {
		h.err = fmt.Errorf("recipe[%s]: %w", h.key, ErrNotFound)
		return h
	}
	recipe.AddIngredient(ingredientID, amount)

	return h
}

// Err returns the first error met by AddIngredient.
func (h *RecipeHandle) Err() error {
	h.list.mu.RLock()
	defer h.list.mu.RUnlock()

	return h.err
}

// Recipe returns a copy of the recipe's current state.
func (h *RecipeHandle) Recipe() (Recipe, error) {
	if err := h.Err(); err != nil {
		return Recipe{}, err
	}
	return h.list.Recipe(h.key)
}
