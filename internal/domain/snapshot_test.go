package domain_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shoppinglist/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingList_JSON(t *testing.T) {
	list := domain.NewShoppingList(domain.WithIDSource(sequentialIDs()))
	flour := list.InsertIngredient("Flour")
	bread := list.GenerateRecipe("Bread").AddIngredient(flour, decimal.NewFromInt(500))
	require.NoError(t, list.AddRecipeToList(bread.Key(), decimal.NewFromInt(2)))
	list.InsertShoppingListItem(flour, decimal.RequireFromString("0.5"))

	data, err := json.Marshal(list)
	require.NoError(t, err)

	want := `{
		"ingredients": {
			"00000000-0000-0000-0000-000000000001": {"id": "00000000-0000-0000-0000-000000000001", "name": "Flour"}
		},
		"recipes": {
			"00000000-0000-0000-0000-000000000002": {
				"id": "00000000-0000-0000-0000-000000000002",
				"name": "Bread",
				"ingredients": [{"ingredient_id": "00000000-0000-0000-0000-000000000001", "amount": 500}]
			}
		},
		"shopping_list": [
			{
				"id": "00000000-0000-0000-0000-000000000003",
				"ingredient_id": "00000000-0000-0000-0000-000000000001",
				"amount": 1000,
				"recipe_id": "00000000-0000-0000-0000-000000000002"
			},
			{
				"id": "00000000-0000-0000-0000-000000000004",
				"ingredient_id": "00000000-0000-0000-0000-000000000001",
				"amount": 0.5,
				"recipe_id": null
			}
		]
	}`
	assert.JSONEq(t, want, string(data))

	restored := domain.NewShoppingList()
	require.NoError(t, json.Unmarshal(data, restored))

	assertNoDiff(t, list.Snapshot(), restored.Snapshot())

	// restored aggregates keep minting keys
	salt := restored.InsertIngredient("Salt")
	assert.NotEqual(t, flour, salt)
}

func TestShoppingList_AmountsAreNumbers(t *testing.T) {
	list := domain.NewShoppingList()
	flour := list.InsertIngredient("Flour")
	list.GenerateRecipe("Bread").AddIngredient(flour, decimal.RequireFromString("0.1"))
	list.InsertShoppingListItem(flour, decimal.RequireFromString("-12.345"))

	data, err := json.Marshal(list.Snapshot())
	require.NoError(t, err)

	var raw struct {
		Recipes map[string]struct {
			Ingredients []struct {
				Amount json.RawMessage `json:"amount"`
			} `json:"ingredients"`
		} `json:"recipes"`
		ShoppingList []struct {
			Amount json.RawMessage `json:"amount"`
		} `json:"shopping_list"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Len(t, raw.Recipes, 1)
	for _, recipe := range raw.Recipes {
		require.Len(t, recipe.Ingredients, 1)
		assert.Equal(t, "0.1", string(recipe.Ingredients[0].Amount))
	}
	require.Len(t, raw.ShoppingList, 1)
	assert.Equal(t, "-12.345", string(raw.ShoppingList[0].Amount))

	// quoted amounts are still accepted
	var item domain.ShoppingListItem
	require.NoError(t, json.Unmarshal([]byte(`{"id": "`+flour.String()+`", "ingredient_id": "`+flour.String()+`", "amount": "2.5", "recipe_id": null}`), &item))
	assert.Equal(t, "2.5", item.Amount.String())
}

func TestRecipeHandle_AfterUnmarshalJSON(t *testing.T) {
	list := domain.NewShoppingList()
	flour := list.InsertIngredient("Flour")
	handle := list.GenerateRecipe("Bread")

	data, err := json.Marshal(list)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, list))

	// the handle edits the recipe the list holds now
	handle.AddIngredient(flour, decimal.NewFromInt(1))
	require.NoError(t, handle.Err())

	stored, err := list.Recipe(handle.Key())
	require.NoError(t, err)
	require.Len(t, stored.Ingredients, 1)

	fromHandle, err := handle.Recipe()
	require.NoError(t, err)
	assertNoDiff(t, stored, fromHandle)
}

func TestRecipeHandle_RecipeReplaced(t *testing.T) {
	list := domain.NewShoppingList()
	flour := list.InsertIngredient("Flour")
	handle := list.GenerateRecipe("Bread")

	empty, err := json.Marshal(domain.NewShoppingList())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(empty, list))

	handle.AddIngredient(flour, decimal.NewFromInt(1)).
		AddIngredient(flour, decimal.NewFromInt(2))

	require.ErrorIs(t, handle.Err(), domain.ErrNotFound)
	_, err = handle.Recipe()
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.Counts{}, list.Len())
}

func TestShoppingList_UnmarshalJSON_ZeroValue(t *testing.T) {
	var restored domain.ShoppingList

	err := json.Unmarshal([]byte(`{"ingredients": {}, "recipes": {}, "shopping_list": []}`), &restored)
	require.NoError(t, err)

	key := restored.InsertIngredient("Flour")
	_, err = restored.Ingredient(key)
	require.NoError(t, err)
}

func TestRestore(t *testing.T) {
	ingredientID := domain.KeyOf[domain.Ingredient](uuid.MustParse(gofakeit.UUID()))
	recipeID := domain.KeyOf[domain.Recipe](uuid.MustParse(gofakeit.UUID()))
	itemID := domain.KeyOf[domain.ShoppingListItem](uuid.MustParse(gofakeit.UUID()))
	otherIngredientID := domain.KeyOf[domain.Ingredient](uuid.MustParse(gofakeit.UUID()))
	otherRecipeID := domain.KeyOf[domain.Recipe](uuid.MustParse(gofakeit.UUID()))

	item := domain.ShoppingListItem{
		ID:           itemID,
		IngredientID: ingredientID,
		Amount:       decimal.NewFromInt(1),
		RecipeID:     &recipeID,
	}

	tests := []struct {
		name      string
		snap      domain.Snapshot
		wantError string
	}{
		{
			name: "consistent snapshot: ok",
			snap: domain.Snapshot{
				Ingredients: map[domain.Key[domain.Ingredient]]domain.Ingredient{
					ingredientID: {ID: ingredientID, Name: "Flour"},
				},
				Recipes: map[domain.Key[domain.Recipe]]domain.Recipe{
					recipeID: {ID: recipeID, Name: "Bread", Ingredients: []domain.RecipeIngredient{
						{IngredientID: ingredientID, Amount: decimal.NewFromInt(1)},
					}},
				},
				ShoppingList: []domain.ShoppingListItem{item},
			},
		},
		{
			name: "empty snapshot: ok",
			snap: domain.Snapshot{},
		},
		{
			name: "ingredient under foreign key: error",
			snap: domain.Snapshot{
				Ingredients: map[domain.Key[domain.Ingredient]]domain.Ingredient{
					otherIngredientID: {ID: ingredientID, Name: "Flour"},
				},
			},
			wantError: "ingredient[" + ingredientID.String() + "] is stored under key " + otherIngredientID.String(),
		},
		{
			name: "recipe under foreign key: error",
			snap: domain.Snapshot{
				Recipes: map[domain.Key[domain.Recipe]]domain.Recipe{
					otherRecipeID: {ID: recipeID, Name: "Bread"},
				},
			},
			wantError: "recipe[" + recipeID.String() + "] is stored under key " + otherRecipeID.String(),
		},
		{
			name: "duplicated item: error",
			snap: domain.Snapshot{
				ShoppingList: []domain.ShoppingListItem{item, item},
			},
			wantError: "item[" + itemID.String() + "] is duplicated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := domain.Restore(tt.snap)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			counts := list.Len()
			assert.Equal(t, len(tt.snap.Ingredients), counts.Ingredients)
			assert.Equal(t, len(tt.snap.Recipes), counts.Recipes)
			assert.Equal(t, len(tt.snap.ShoppingList), counts.Items)

			assertNoDiff(t, tt.snap.ShoppingList, nilIfEmpty(slices.Collect(list.ShoppingListItems())))
		})
	}
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
