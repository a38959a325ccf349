package service

import (
	"context"
	"errors"
	"strings"

	"recipehub/internal/api/models"
	"recipehub/internal/api/repository"
	"recipehub/internal/cache"

	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type IngredientService interface {
	List(ctx context.Context, name string) ([]models.Ingredient, error)
	Get(ctx context.Context, id int64) (*models.Ingredient, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
	cache          *cache.Cache
}

func NewIngredientService(ingredientRepo repository.IngredientRepository, c *cache.Cache) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo, cache: c}
}

func (s *ingredientService) List(ctx context.Context, name string) ([]models.Ingredient, error) {
	key := "ingredients:name:" + strings.ToLower(name)

	var cached []models.Ingredient
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	ingredients, err := s.ingredientRepo.List(ctx, name)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, ingredients)
	return ingredients, nil
}

func (s *ingredientService) Get(ctx context.Context, id int64) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}
