package models

// Join model carrying the amount of an ingredient within a recipe.
// Rows are replaced wholesale on recipe update, never diffed.
type RecipeIngredient struct {
	ID           int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID     int64 `json:"recipe_id" gorm:"uniqueIndex:idx_recipe_ingredient;not null"`
	IngredientID int64 `json:"ingredient_id" gorm:"uniqueIndex:idx_recipe_ingredient;not null"`
	Amount       int   `json:"amount" gorm:"not null"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
