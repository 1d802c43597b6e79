package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shoppinglist/internal/db"
	"github.com/nikolayk812/shoppinglist/internal/domain"
	"github.com/nikolayk812/shoppinglist/internal/logger"
	"github.com/nikolayk812/shoppinglist/internal/port"
)

type shoppingListRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewShoppingList(pool *pgxpool.Pool, log *logger.Logger) (port.ShoppingListRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &shoppingListRepository{
		q:    db.New(pool),
		pool: pool,
		log:  log,
	}, nil
}

func NewShoppingListWithTx(tx pgx.Tx, log *logger.Logger) port.ShoppingListRepository {
	if log == nil {
		log = logger.NewNop()
	}

	return &shoppingListRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
		log:  log,
	}
}

func (r *shoppingListRepository) Save(ctx context.Context, ownerID string, list *domain.ShoppingList) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if list == nil {
		return fmt.Errorf("list is nil")
	}

	snap := list.Snapshot()

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.DeleteShoppingList(ctx, ownerID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteShoppingList: %w", err)
		}

		if err := insertSnapshot(ctx, q, ownerID, snap); err != nil {
			return struct{}{}, fmt.Errorf("insertSnapshot: %w", err)
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	r.log.Debug("shopping list saved",
		"owner_id", ownerID,
		"ingredients", len(snap.Ingredients),
		"recipes", len(snap.Recipes),
		"items", len(snap.ShoppingList))

	return nil
}

func (r *shoppingListRepository) Get(ctx context.Context, ownerID string) (*domain.ShoppingList, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	snap, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Snapshot, error) {
		return loadSnapshot(ctx, q, ownerID)
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	list, err := domain.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("domain.Restore: %w", err)
	}

	return list, nil
}

func insertSnapshot(ctx context.Context, q *db.Queries, ownerID string, snap domain.Snapshot) error {
	for _, ingredient := range snap.Ingredients {
		err := q.InsertIngredient(ctx, db.Ingredient{
			OwnerID: ownerID,
			ID:      ingredient.ID.UUID(),
			Name:    ingredient.Name,
		})
		if err != nil {
			return fmt.Errorf("q.InsertIngredient: %w", err)
		}
	}

	for _, recipe := range snap.Recipes {
		err := q.InsertRecipe(ctx, db.Recipe{
			OwnerID: ownerID,
			ID:      recipe.ID.UUID(),
			Name:    recipe.Name,
		})
		if err != nil {
			return fmt.Errorf("q.InsertRecipe: %w", err)
		}

		for i, entry := range recipe.Ingredients {
			err := q.InsertRecipeIngredient(ctx, db.RecipeIngredient{
				OwnerID:      ownerID,
				RecipeID:     recipe.ID.UUID(),
				Position:     int32(i),
				IngredientID: entry.IngredientID.UUID(),
				Amount:       entry.Amount,
			})
			if err != nil {
				return fmt.Errorf("q.InsertRecipeIngredient: %w", err)
			}
		}
	}

	for i, item := range snap.ShoppingList {
		if err := q.InsertItem(ctx, mapItemToDB(ownerID, i, item)); err != nil {
			return fmt.Errorf("q.InsertItem: %w", err)
		}
	}

	return nil
}

func loadSnapshot(ctx context.Context, q *db.Queries, ownerID string) (domain.Snapshot, error) {
	dbIngredients, err := q.ListIngredients(ctx, ownerID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("q.ListIngredients: %w", err)
	}

	dbRecipes, err := q.ListRecipes(ctx, ownerID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("q.ListRecipes: %w", err)
	}

	dbEntries, err := q.ListRecipeIngredients(ctx, ownerID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("q.ListRecipeIngredients: %w", err)
	}

	dbItems, err := q.ListItems(ctx, ownerID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("q.ListItems: %w", err)
	}

	snap := domain.Snapshot{
		Ingredients:  make(map[domain.Key[domain.Ingredient]]domain.Ingredient, len(dbIngredients)),
		Recipes:      make(map[domain.Key[domain.Recipe]]domain.Recipe, len(dbRecipes)),
		ShoppingList: make([]domain.ShoppingListItem, 0, len(dbItems)),
	}

	for _, row := range dbIngredients {
		key := domain.KeyOf[domain.Ingredient](row.ID)
		snap.Ingredients[key] = domain.Ingredient{ID: key, Name: row.Name}
	}

	// rows come ordered by recipe and position
	entries := make(map[uuid.UUID][]domain.RecipeIngredient)
	for _, row := range dbEntries {
		entries[row.RecipeID] = append(entries[row.RecipeID], domain.RecipeIngredient{
			IngredientID: domain.KeyOf[domain.Ingredient](row.IngredientID),
			Amount:       row.Amount,
		})
	}

	for _, row := range dbRecipes {
		key := domain.KeyOf[domain.Recipe](row.ID)
		snap.Recipes[key] = domain.Recipe{
			ID:          key,
			Name:        row.Name,
			Ingredients: slices.Clip(entries[row.ID]),
		}
	}

	for _, row := range dbItems {
		snap.ShoppingList = append(snap.ShoppingList, mapItemToDomain(row))
	}

	return snap, nil
}

func mapItemToDB(ownerID string, position int, item domain.ShoppingListItem) db.ShoppingListItem {
	row := db.ShoppingListItem{
		OwnerID:      ownerID,
		ID:           item.ID.UUID(),
		Position:     int32(position),
		IngredientID: item.IngredientID.UUID(),
		Amount:       item.Amount,
	}

	if recipeID, ok := item.FromRecipe(); ok {
		row.RecipeID = uuid.NullUUID{UUID: recipeID.UUID(), Valid: true}
	}

	return row
}

func mapItemToDomain(row db.ShoppingListItem) domain.ShoppingListItem {
	item := domain.ShoppingListItem{
		ID:           domain.KeyOf[domain.ShoppingListItem](row.ID),
		IngredientID: domain.KeyOf[domain.Ingredient](row.IngredientID),
		Amount:       row.Amount,
	}

	if row.RecipeID.Valid {
		recipeID := domain.KeyOf[domain.Recipe](row.RecipeID.UUID)
		item.RecipeID = &recipeID
	}

	return item
}
