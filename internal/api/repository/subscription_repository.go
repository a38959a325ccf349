package repository

import (
	"context"
	"fmt"

	"recipehub/internal/api/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, authorID, followerID int64) (bool, error)
	Exists(ctx context.Context, authorID, followerID int64) (bool, error)
	ListByFollower(ctx context.Context, followerID int64, page, limit int) ([]models.Subscription, int64, error)
	AuthorIDSet(ctx context.Context, followerID int64, authorIDs []int64) (map[int64]struct{}, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// Delete removes the pair row and reports whether one existed.
func (r *subscriptionRepository) Delete(ctx context.Context, authorID, followerID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("author_id = ? AND follower_id = ?", authorID, followerID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return false, fmt.Errorf("delete subscription: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, authorID, followerID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("author_id = ? AND follower_id = ?", authorID, followerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) ListByFollower(ctx context.Context, followerID int64, page, limit int) ([]models.Subscription, int64, error) {
	var subs []models.Subscription
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("follower_id = ?", followerID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&subs).Error; err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}

	return subs, total, nil
}

// AuthorIDSet returns which of authorIDs the follower is subscribed to,
// in a single query.
func (r *subscriptionRepository) AuthorIDSet(ctx context.Context, followerID int64, authorIDs []int64) (map[int64]struct{}, error) {
	set := make(map[int64]struct{}, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("follower_id = ? AND author_id IN ?", followerID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("subscription id set: %w", err)
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
