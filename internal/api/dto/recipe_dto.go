package dto

import "recipehub/internal/api/models"

// RecipeIngredientRequest references an ingredient by id with an amount.
// Amount bounds are checked by the service so violations map to the
// dedicated validation error rather than a generic binding failure.
type RecipeIngredientRequest struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount"`
}

type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
	Tags        []int64                   `json:"tags"`
	Name        string                    `json:"name" binding:"required,max=200"`
	Image       string                    `json:"image" binding:"required"` // base64 payload
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=360"`
}

type RecipeIngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeShortResponse is the compact form used by favorites, cart entries
// and subscription previews.
type RecipeShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func FromRecipeModelShort(r models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// FromRecipeModel builds the full representation from a preloaded model.
// Viewer flags are supplied by the caller, which computes them in batch.
func FromRecipeModel(r models.Recipe, author UserResponse, isFavorited, isInShoppingCart bool) RecipeResponse {
	tags := make([]TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, FromTagModel(t))
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		item := RecipeIngredientResponse{
			ID:     ri.IngredientID,
			Amount: ri.Amount,
		}
		if ri.Ingredient != nil {
			item.Name = ri.Ingredient.Name
			item.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}

	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}
