package domain

type Ingredient struct {
	ID   Key[Ingredient] `json:"id"`
	Name string          `json:"name"`
}
