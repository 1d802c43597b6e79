package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const deleteItems = `DELETE FROM shopping_list_items WHERE owner_id = $1`

const deleteRecipes = `DELETE FROM recipes WHERE owner_id = $1`

const deleteIngredients = `DELETE FROM ingredients WHERE owner_id = $1`

// DeleteShoppingList removes every row of the owner. Recipe ingredients are
// removed by cascade.
func (q *Queries) DeleteShoppingList(ctx context.Context, ownerID string) error {
	for _, stmt := range []string{deleteItems, deleteRecipes, deleteIngredients} {
		if _, err := q.db.Exec(ctx, stmt, ownerID); err != nil {
			return fmt.Errorf("db.Exec: %w", err)
		}
	}
	return nil
}

const insertIngredient = `INSERT INTO ingredients (owner_id, id, name) VALUES ($1, $2, $3)`

func (q *Queries) InsertIngredient(ctx context.Context, arg Ingredient) error {
	_, err := q.db.Exec(ctx, insertIngredient, arg.OwnerID, arg.ID, arg.Name)
	return err
}

const insertRecipe = `INSERT INTO recipes (owner_id, id, name) VALUES ($1, $2, $3)`

func (q *Queries) InsertRecipe(ctx context.Context, arg Recipe) error {
	_, err := q.db.Exec(ctx, insertRecipe, arg.OwnerID, arg.ID, arg.Name)
	return err
}

const insertRecipeIngredient = `
INSERT INTO recipe_ingredients (owner_id, recipe_id, position, ingredient_id, amount)
VALUES ($1, $2, $3, $4, $5)`

func (q *Queries) InsertRecipeIngredient(ctx context.Context, arg RecipeIngredient) error {
	_, err := q.db.Exec(ctx, insertRecipeIngredient,
		arg.OwnerID, arg.RecipeID, arg.Position, arg.IngredientID, arg.Amount)
	return err
}

const insertItem = `
INSERT INTO shopping_list_items (owner_id, id, position, ingredient_id, amount, recipe_id)
VALUES ($1, $2, $3, $4, $5, $6)`

func (q *Queries) InsertItem(ctx context.Context, arg ShoppingListItem) error {
	_, err := q.db.Exec(ctx, insertItem,
		arg.OwnerID, arg.ID, arg.Position, arg.IngredientID, arg.Amount, arg.RecipeID)
	return err
}

const listIngredients = `SELECT owner_id, id, name FROM ingredients WHERE owner_id = $1`

func (q *Queries) ListIngredients(ctx context.Context, ownerID string) ([]Ingredient, error) {
	return collect[Ingredient](ctx, q.db, listIngredients, ownerID)
}

const listRecipes = `SELECT owner_id, id, name FROM recipes WHERE owner_id = $1`

func (q *Queries) ListRecipes(ctx context.Context, ownerID string) ([]Recipe, error) {
	return collect[Recipe](ctx, q.db, listRecipes, ownerID)
}

const listRecipeIngredients = `
SELECT owner_id, recipe_id, position, ingredient_id, amount
FROM recipe_ingredients
WHERE owner_id = $1
ORDER BY recipe_id, position`

func (q *Queries) ListRecipeIngredients(ctx context.Context, ownerID string) ([]RecipeIngredient, error) {
	return collect[RecipeIngredient](ctx, q.db, listRecipeIngredients, ownerID)
}

const listItems = `
SELECT owner_id, id, position, ingredient_id, amount, recipe_id
FROM shopping_list_items
WHERE owner_id = $1
ORDER BY position`

func (q *Queries) ListItems(ctx context.Context, ownerID string) ([]ShoppingListItem, error) {
	return collect[ShoppingListItem](ctx, q.db, listItems, ownerID)
}

func collect[T any](ctx context.Context, db DBTX, query string, args ...interface{}) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[T])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	return items, nil
}
