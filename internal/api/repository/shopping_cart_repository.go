package repository

import (
	"context"
	"fmt"

	"recipehub/internal/api/models"

	"gorm.io/gorm"
)

type ShoppingCartRepository interface {
	Create(ctx context.Context, entry *models.ShoppingCart) error
	Delete(ctx context.Context, userID, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]struct{}, error)
	CartIngredients(ctx context.Context, userID int64) ([]models.CartIngredient, error)
}

type shoppingCartRepository struct {
	db *gorm.DB
}

func NewShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Create(ctx context.Context, entry *models.ShoppingCart) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("add to shopping cart: %w", err)
	}
	return nil
}

func (r *shoppingCartRepository) Delete(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if result.Error != nil {
		return false, fmt.Errorf("remove from shopping cart: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *shoppingCartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shoppingCartRepository) RecipeIDSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]struct{}, error) {
	set := make(map[int64]struct{}, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("shopping cart id set: %w", err)
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// CartIngredients pulls every (ingredient, amount) occurrence in the user's
// cart through the recipe_ingredients join, un-summed. Grouping happens in
// the service so the logic is independent of how carts are stored.
func (r *shoppingCartRepository) CartIngredients(ctx context.Context, userID int64) ([]models.CartIngredient, error) {
	var rows []models.CartIngredient
	err := r.db.WithContext(ctx).Raw(`
		SELECT i.id AS ingredient_id, i.name, i.measurement_unit, ri.amount
		FROM shopping_carts sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = ?
		ORDER BY i.id, ri.id`, userID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("cart ingredients: %w", err)
	}
	return rows, nil
}
