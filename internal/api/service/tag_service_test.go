package service

import (
	"context"
	"testing"

	"recipehub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// A nil cache behaves as always-miss, so the repository serves every call.

func TestTagList_NilCache(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, nil)

	tags := []models.Tag{{ID: 1, Name: "breakfast", Slug: "breakfast"}}
	tagRepo.On("List", mock.Anything).Return(tags, nil)

	got, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, tags, got)
	tagRepo.AssertExpectations(t)
}

func TestTagGet_NotFound(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, nil)

	tagRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 99)

	assert.Equal(t, ErrTagNotFound, err)
}

func TestIngredientList_NameFilterPassedThrough(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, nil)

	ingredients := []models.Ingredient{{ID: 1, Name: "flour", MeasurementUnit: "g"}}
	ingredientRepo.On("List", mock.Anything, "flo").Return(ingredients, nil)

	got, err := svc.List(context.Background(), "flo")

	assert.NoError(t, err)
	assert.Equal(t, ingredients, got)
	ingredientRepo.AssertExpectations(t)
}

func TestIngredientGet_NotFound(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, nil)

	ingredientRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 99)

	assert.Equal(t, ErrIngredientNotFound, err)
}
