package port

import (
	"context"

	"github.com/nikolayk812/shoppinglist/internal/domain"
)

// ShoppingListRepository stores one whole aggregate per owner.
type ShoppingListRepository interface {
	// Save replaces everything stored for ownerID with the list's current state.
	Save(ctx context.Context, ownerID string, list *domain.ShoppingList) error
	// Get returns an empty list when nothing is stored for ownerID.
	Get(ctx context.Context, ownerID string) (*domain.ShoppingList, error)
}
