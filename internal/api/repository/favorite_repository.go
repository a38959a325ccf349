package repository

import (
	"context"
	"fmt"

	"recipehub/internal/api/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(ctx context.Context, fav *models.Favorite) error
	Delete(ctx context.Context, userID, recipeID int64) (bool, error)
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]struct{}, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, fav *models.Favorite) error {
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("delete favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecipeIDSet answers "which of these recipes has the user favorited" with
// one query, for batch page annotation.
func (r *favoriteRepository) RecipeIDSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]struct{}, error) {
	set := make(map[int64]struct{}, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("favorite id set: %w", err)
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
