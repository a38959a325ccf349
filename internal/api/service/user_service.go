package service

import (
	"context"
	"errors"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	Get(ctx context.Context, viewerID, userID int64) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository) UserService {
	return &userService{userRepo: userRepo, subRepo: subRepo}
}

// Get returns the public profile with is_subscribed computed for the
// viewer; anonymous viewers always see false.
func (s *userService) Get(ctx context.Context, viewerID, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != userID {
		isSubscribed, err = s.subRepo.Exists(ctx, userID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	resp := dto.FromUserModel(*user, isSubscribed)
	return &resp, nil
}
