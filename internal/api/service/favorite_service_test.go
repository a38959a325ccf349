package service

import (
	"context"
	"testing"

	"recipehub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestFavoriteAdd_Success(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewFavoriteService(favRepo, recipeRepo)

	recipe := &models.Recipe{ID: 5, Name: "Pancakes", Image: "recipes/images/p.png", CookingTime: 20}
	recipeRepo.On("GetByID", mock.Anything, int64(5)).Return(recipe, nil)
	favRepo.On("Exists", mock.Anything, int64(7), int64(5)).Return(false, nil)
	favRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Favorite")).Return(nil)

	resp, err := svc.Add(context.Background(), 7, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "Pancakes", resp.Name)
	assert.Equal(t, 20, resp.CookingTime)
	favRepo.AssertExpectations(t)
}

func TestFavoriteAdd_OwnRecipeAllowed(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewFavoriteService(favRepo, recipeRepo)

	recipe := &models.Recipe{ID: 5, AuthorID: 7, Name: "Pancakes"}
	recipeRepo.On("GetByID", mock.Anything, int64(5)).Return(recipe, nil)
	favRepo.On("Exists", mock.Anything, int64(7), int64(5)).Return(false, nil)
	favRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Favorite")).Return(nil)

	_, err := svc.Add(context.Background(), 7, 5)

	assert.NoError(t, err)
}

func TestFavoriteAdd_Duplicate(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewFavoriteService(favRepo, recipeRepo)

	recipeRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Recipe{ID: 5}, nil)
	favRepo.On("Exists", mock.Anything, int64(7), int64(5)).Return(true, nil)

	_, err := svc.Add(context.Background(), 7, 5)

	assert.Equal(t, ErrDuplicateFavorite, err)
	favRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFavoriteAdd_RecipeMissing(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewFavoriteService(favRepo, recipeRepo)

	recipeRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Add(context.Background(), 7, 99)

	assert.Equal(t, ErrRecipeNotFound, err)
}

func TestFavoriteRemove_NotFavorited(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	svc := NewFavoriteService(favRepo, new(MockRecipeRepository))

	favRepo.On("Delete", mock.Anything, int64(7), int64(5)).Return(false, nil)

	err := svc.Remove(context.Background(), 7, 5)

	assert.Equal(t, ErrFavoriteNotFound, err)
}

// A remove followed by a new add succeeds: the pair constraint only covers
// live rows.
func TestFavorite_ReAddAfterRemove(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewFavoriteService(favRepo, recipeRepo)

	recipeRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Recipe{ID: 5}, nil)
	favRepo.On("Delete", mock.Anything, int64(7), int64(5)).Return(true, nil).Once()
	favRepo.On("Exists", mock.Anything, int64(7), int64(5)).Return(false, nil).Once()
	favRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Favorite")).Return(nil).Once()

	assert.NoError(t, svc.Remove(context.Background(), 7, 5))

	_, err := svc.Add(context.Background(), 7, 5)
	assert.NoError(t, err)
	favRepo.AssertExpectations(t)
}
