package service

import (
	"context"
	"errors"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/models"
	"recipehub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrDuplicateFavorite = errors.New("recipe already favorited")
	ErrFavoriteNotFound  = errors.New("recipe is not favorited")
)

type FavoriteService interface {
	Add(ctx context.Context, userID, recipeID int64) (*dto.RecipeShortResponse, error)
	Remove(ctx context.Context, userID, recipeID int64) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, recipeRepo: recipeRepo}
}

// Add favorites a recipe for the user. Favoriting one's own recipe is
// allowed; the only rules are recipe existence and pair uniqueness.
func (s *favoriteService) Add(ctx context.Context, userID, recipeID int64) (*dto.RecipeShortResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFavorite
	}

	fav := &models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.favoriteRepo.Create(ctx, fav); err != nil {
		// two racing requests: the unique index wins, report it the same way
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}

	resp := dto.FromRecipeModelShort(*recipe)
	return &resp, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, recipeID int64) error {
	deleted, err := s.favoriteRepo.Delete(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFavoriteNotFound
	}
	return nil
}
