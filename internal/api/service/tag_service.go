package service

import (
	"context"
	"errors"

	"recipehub/internal/api/models"
	"recipehub/internal/api/repository"
	"recipehub/internal/cache"

	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

const tagsCacheKey = "tags:all"

type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
	cache   *cache.Cache
}

func NewTagService(tagRepo repository.TagRepository, c *cache.Cache) TagService {
	return &tagService{tagRepo: tagRepo, cache: c}
}

// List serves the tag reference list through the cache; tags change only
// via out-of-band administration, so a TTL is enough for freshness.
func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	var cached []models.Tag
	if hit, err := s.cache.GetJSON(ctx, tagsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// best effort; a failed write just means the next request hits the DB
	_ = s.cache.SetJSON(ctx, tagsCacheKey, tags)
	return tags, nil
}

func (s *tagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
