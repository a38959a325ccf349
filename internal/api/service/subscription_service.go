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
	ErrSelfSubscription      = errors.New("cannot subscribe to yourself")
	ErrDuplicateSubscription = errors.New("already subscribed to this author")
	ErrSubscriptionNotFound  = errors.New("not subscribed to this author")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidLimit          = errors.New("recipes_limit must be a non-negative integer")
)

// AllRecipes is the recipes_limit value meaning "no truncation".
const AllRecipes = -1

type SubscriptionService interface {
	Subscribe(ctx context.Context, followerID, authorID int64, recipesLimit int) (*dto.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, followerID, authorID int64) error
	List(ctx context.Context, followerID int64, page, limit, recipesLimit int) ([]dto.SubscriptionResponse, int64, error)
}

type subscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo, recipeRepo: recipeRepo}
}

// Subscribe validates the social rules (no self-subscription, one
// subscription per pair) and creates the row.
func (s *subscriptionService) Subscribe(ctx context.Context, followerID, authorID int64, recipesLimit int) (*dto.SubscriptionResponse, error) {
	if authorID == followerID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.subRepo.Exists(ctx, authorID, followerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSubscription
	}

	sub := &models.Subscription{AuthorID: authorID, FollowerID: followerID}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateSubscription
		}
		return nil, err
	}

	return s.buildAuthorResponse(ctx, followerID, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, followerID, authorID int64) error {
	deleted, err := s.subRepo.Delete(ctx, authorID, followerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (s *subscriptionService) List(ctx context.Context, followerID int64, page, limit, recipesLimit int) ([]dto.SubscriptionResponse, int64, error) {
	subs, total, err := s.subRepo.ListByFollower(ctx, followerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		if sub.Author == nil {
			continue
		}
		resp, err := s.buildAuthorResponse(ctx, followerID, sub.Author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}

	return responses, total, nil
}

// buildAuthorResponse assembles the author with a recipe preview (newest
// first, truncated to recipesLimit unless AllRecipes) and the total count.
// is_subscribed is recomputed instead of assumed true.
func (s *subscriptionService) buildAuthorResponse(ctx context.Context, followerID int64, author *models.User, recipesLimit int) (*dto.SubscriptionResponse, error) {
	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed, err := s.subRepo.Exists(ctx, author.ID, followerID)
	if err != nil {
		return nil, err
	}

	preview := make([]dto.RecipeShortResponse, 0, len(recipes))
	for _, r := range recipes {
		preview = append(preview, dto.FromRecipeModelShort(r))
	}

	return &dto.SubscriptionResponse{
		Email:        author.Email,
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: isSubscribed,
		Recipes:      preview,
		RecipesCount: count,
	}, nil
}
