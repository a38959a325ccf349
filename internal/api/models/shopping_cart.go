package models

import "time"

// ShoppingCart keeps one row per (user, recipe); ingredient quantities are
// recomputed through recipe_ingredients at read time.
type ShoppingCart struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_user_cart_recipe;not null"`
	RecipeID  int64     `json:"recipe_id" gorm:"uniqueIndex:idx_user_cart_recipe;not null"`
	CreatedAt time.Time `json:"created_at"`

	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// CartIngredient is one (ingredient, amount) occurrence pulled out of a
// cart, before summing. The same shape works whether amounts live on the
// join table or directly on cart rows.
type CartIngredient struct {
	IngredientID    int64  `json:"ingredient_id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}
