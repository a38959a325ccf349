package repository

import (
	"context"
	"fmt"

	"recipehub/internal/api/models"

	"gorm.io/gorm"
)

type IngredientRepository interface {
	List(ctx context.Context, name string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// List returns ingredients, optionally narrowed by a case-insensitive
// substring match on the name.
func (r *ingredientRepository) List(ctx context.Context, name string) ([]models.Ingredient, error) {
	var list []models.Ingredient
	db := r.db.WithContext(ctx)
	if name != "" {
		db = db.Where("name ILIKE ?", "%"+name+"%")
	}
	if err := db.Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return list, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ingredients by ids: %w", err)
	}
	return list, nil
}
