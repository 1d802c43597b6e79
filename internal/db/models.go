package db

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Ingredient struct {
	OwnerID string
	ID      uuid.UUID
	Name    string
}

type Recipe struct {
	OwnerID string
	ID      uuid.UUID
	Name    string
}

type RecipeIngredient struct {
	OwnerID      string
	RecipeID     uuid.UUID
	Position     int32
	IngredientID uuid.UUID
	Amount       decimal.Decimal
}

type ShoppingListItem struct {
	OwnerID      string
	ID           uuid.UUID
	Position     int32
	IngredientID uuid.UUID
	Amount       decimal.Decimal
	RecipeID     uuid.NullUUID
}
