// Package domain holds the shopping list aggregate and the entities it owns.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Key identifies an entity of kind T. The type parameter only exists at
// compile time: a Key[Recipe] cannot be passed where a Key[Ingredient] is
// expected, while both are a bare UUID at runtime and on the wire.
type Key[T any] struct {
	id uuid.UUID
}

// KeyOf wraps a raw identifier, e.g. one read back from storage.
func KeyOf[T any](id uuid.UUID) Key[T] {
	return Key[T]{id: id}
}

func (k Key[T]) UUID() uuid.UUID {
	return k.id
}

func (k Key[T]) IsZero() bool {
	return k.id == uuid.Nil
}

func (k Key[T]) String() string {
	return k.id.String()
}

func (k Key[T]) MarshalText() ([]byte, error) {
	return k.id.MarshalText()
}

func (k *Key[T]) UnmarshalText(data []byte) error {
	id, err := uuid.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("key[%s] is not valid: %w", data, err)
	}

	k.id = id
	return nil
}
