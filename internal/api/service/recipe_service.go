package service

import (
	"context"
	"errors"
	"fmt"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/models"
	"recipehub/internal/api/repository"
	"recipehub/internal/storage"

	"gorm.io/gorm"
)

// Bounds mirror the schema constraints on recipe composition.
const (
	MinIngredientAmount = 1
	MaxIngredientAmount = 1000
	MinCookingTime      = 1
	MaxCookingTime      = 360
)

var (
	ErrRecipeNotFound          = errors.New("recipe not found")
	ErrNotRecipeAuthor         = errors.New("only the author may modify a recipe")
	ErrEmptyField              = errors.New("field must not be empty")
	ErrDuplicateIngredient     = errors.New("duplicate ingredient in recipe")
	ErrDuplicateTag            = errors.New("duplicate tag in recipe")
	ErrInvalidIngredientAmount = errors.New("ingredient amount out of bounds")
	ErrUnknownIngredient       = errors.New("unknown ingredient")
	ErrUnknownTag              = errors.New("unknown tag")
)

// RecipeListFilter is what the HTTP layer parsed out of the query string.
type RecipeListFilter struct {
	AuthorID      int64
	TagSlugs      []string
	OnlyFavorited bool
	OnlyInCart    bool
}

type RecipeService interface {
	List(ctx context.Context, viewerID int64, filter RecipeListFilter, page, limit int) ([]dto.RecipeResponse, int64, error)
	Get(ctx context.Context, viewerID, id int64) (*dto.RecipeResponse, error)
	Create(ctx context.Context, authorID int64, req dto.RecipeRequest) (*dto.RecipeResponse, error)
	Update(ctx context.Context, authorID, recipeID int64, req dto.RecipeRequest) (*dto.RecipeResponse, error)
	Delete(ctx context.Context, authorID, recipeID int64) error
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.ShoppingCartRepository
	subRepo        repository.SubscriptionRepository
	images         *storage.ImageStore
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	subRepo repository.SubscriptionRepository,
	images *storage.ImageStore,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		subRepo:        subRepo,
		images:         images,
	}
}

func (s *recipeService) List(ctx context.Context, viewerID int64, filter RecipeListFilter, page, limit int) ([]dto.RecipeResponse, int64, error) {
	// flag filters are meaningless without a viewer; the result is empty,
	// the tables are never touched
	if viewerID == 0 && (filter.OnlyFavorited || filter.OnlyInCart) {
		return []dto.RecipeResponse{}, 0, nil
	}

	repoFilter := repository.RecipeFilter{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
	}
	if filter.OnlyFavorited {
		repoFilter.FavoritedBy = viewerID
	}
	if filter.OnlyInCart {
		repoFilter.InCartOf = viewerID
	}

	recipes, total, err := s.recipeRepo.List(ctx, repoFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.buildResponses(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (s *recipeService) Get(ctx context.Context, viewerID, id int64) (*dto.RecipeResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	responses, err := s.buildResponses(ctx, viewerID, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *recipeService) Create(ctx context.Context, authorID int64, req dto.RecipeRequest) (*dto.RecipeResponse, error) {
	ingredients, tagIDs, err := s.validateComposition(ctx, req)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.images.SaveBase64(req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imagePath,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepo.Create(ctx, recipe, ingredients, tagIDs); err != nil {
		s.images.Remove(imagePath)
		return nil, err
	}

	return s.Get(ctx, authorID, recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, authorID, recipeID int64, req dto.RecipeRequest) (*dto.RecipeResponse, error) {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if existing.AuthorID != authorID {
		return nil, ErrNotRecipeAuthor
	}

	ingredients, tagIDs, err := s.validateComposition(ctx, req)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.images.SaveBase64(req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:          recipeID,
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imagePath,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepo.Update(ctx, recipe, ingredients, tagIDs); err != nil {
		s.images.Remove(imagePath)
		return nil, err
	}
	s.images.Remove(existing.Image)

	return s.Get(ctx, authorID, recipeID)
}

func (s *recipeService) Delete(ctx context.Context, authorID, recipeID int64) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if existing.AuthorID != authorID {
		return ErrNotRecipeAuthor
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}
	s.images.Remove(existing.Image)
	return nil
}

// validateComposition enforces the recipe composition rules: both lists
// non-empty, no duplicate references, amounts within bounds, every
// referenced id known. It returns the join rows ready for insertion.
func (s *recipeService) validateComposition(ctx context.Context, req dto.RecipeRequest) ([]models.RecipeIngredient, []int64, error) {
	if len(req.Ingredients) == 0 {
		return nil, nil, fmt.Errorf("%w: ingredients", ErrEmptyField)
	}
	if len(req.Tags) == 0 {
		return nil, nil, fmt.Errorf("%w: tags", ErrEmptyField)
	}

	seenIngredients := make(map[int64]struct{}, len(req.Ingredients))
	ingredientIDs := make([]int64, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if _, dup := seenIngredients[item.ID]; dup {
			return nil, nil, ErrDuplicateIngredient
		}
		seenIngredients[item.ID] = struct{}{}
		ingredientIDs = append(ingredientIDs, item.ID)

		if item.Amount < MinIngredientAmount || item.Amount > MaxIngredientAmount {
			return nil, nil, ErrInvalidIngredientAmount
		}
	}

	seenTags := make(map[int64]struct{}, len(req.Tags))
	for _, tagID := range req.Tags {
		if _, dup := seenTags[tagID]; dup {
			return nil, nil, ErrDuplicateTag
		}
		seenTags[tagID] = struct{}{}
	}

	known, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(known) != len(ingredientIDs) {
		return nil, nil, ErrUnknownIngredient
	}

	knownTags, err := s.tagRepo.GetByIDs(ctx, req.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(knownTags) != len(req.Tags) {
		return nil, nil, ErrUnknownTag
	}

	ingredients := make([]models.RecipeIngredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		ingredients = append(ingredients, models.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}

	return ingredients, req.Tags, nil
}

// buildResponses annotates a page of recipes for the viewer. Membership
// sets are fetched once per table, not once per recipe; anonymous viewers
// get all-false flags without any lookup.
func (s *recipeService) buildResponses(ctx context.Context, viewerID int64, recipes []models.Recipe) ([]dto.RecipeResponse, error) {
	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited := map[int64]struct{}{}
	inCart := map[int64]struct{}{}
	subscribed := map[int64]struct{}{}
	if viewerID != 0 && len(recipes) > 0 {
		var err error
		if favorited, err = s.favoriteRepo.RecipeIDSet(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.cartRepo.RecipeIDSet(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = s.subRepo.AuthorIDSet(ctx, viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	responses := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		author := dto.UserResponse{ID: r.AuthorID}
		if r.Author != nil {
			_, isSub := subscribed[r.AuthorID]
			author = dto.FromUserModel(*r.Author, isSub)
		}
		_, isFav := favorited[r.ID]
		_, isCart := inCart[r.ID]
		responses = append(responses, dto.FromRecipeModel(r, author, isFav, isCart))
	}
	return responses, nil
}
