package repository

import (
	"context"
	"fmt"

	"recipehub/internal/api/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64 // restrict to recipes favorited by this user
	InCartOf    int64 // restrict to recipes in this user's shopping cart
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []int64) error
	Update(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter RecipeFilter, page, limit int) ([]models.Recipe, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe together with its ingredient and tag join rows
// in one transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients", "Tags", "Author").Create(recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return replaceAssociations(tx, recipe.ID, ingredients, tagIDs)
	})
}

// Update rewrites the recipe fields and replaces the full ingredient/tag
// association set (delete then bulk insert) atomically, so a failure partway
// never leaves a recipe without ingredients or tags visible to readers.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{ID: recipe.ID}).
			Select("name", "image", "text", "cooking_time").
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			}).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("clear recipe ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return fmt.Errorf("clear recipe tags: %w", err)
		}

		return replaceAssociations(tx, recipe.ID, ingredients, tagIDs)
	})
}

func replaceAssociations(tx *gorm.DB, recipeID int64, ingredients []models.RecipeIngredient, tagIDs []int64) error {
	for i := range ingredients {
		ingredients[i].ID = 0
		ingredients[i].RecipeID = recipeID
	}
	if len(ingredients) > 0 {
		if err := tx.Create(&ingredients).Error; err != nil {
			return fmt.Errorf("create recipe ingredients: %w", err)
		}
	}

	recipeTags := make([]models.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		recipeTags = append(recipeTags, models.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	if len(recipeTags) > 0 {
		if err := tx.Create(&recipeTags).Error; err != nil {
			return fmt.Errorf("create recipe tags: %w", err)
		}
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Recipe{}, id).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, page, limit int) ([]models.Recipe, int64, error) {
	var list []models.Recipe
	var total int64

	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Recipe{}), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	offset := (page - 1) * limit
	q := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("pub_date desc").
		Limit(limit).
		Offset(offset)
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return list, total, nil
}

func (r *recipeRepository) applyFilter(db *gorm.DB, filter RecipeFilter) *gorm.DB {
	if filter.AuthorID != 0 {
		db = db.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		db = db.Where(
			"recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN ?)",
			filter.TagSlugs,
		)
	}
	// set membership computed once in SQL, not per recipe
	if filter.FavoritedBy != 0 {
		db = db.Where(
			"EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = recipes.id AND f.user_id = ?)",
			filter.FavoritedBy,
		)
	}
	if filter.InCartOf != 0 {
		db = db.Where(
			"EXISTS (SELECT 1 FROM shopping_carts sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?)",
			filter.InCartOf,
		)
	}
	return db
}

// ListByAuthor returns the author's recipes newest first; limit < 0 means all.
func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]models.Recipe, error) {
	var list []models.Recipe
	db := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit >= 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list recipes by author: %w", err)
	}
	return list, nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
