package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/models"
	"recipehub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrDuplicateCartEntry = errors.New("recipe already in shopping cart")
	ErrCartEntryNotFound  = errors.New("recipe is not in shopping cart")
)

// ShoppingListItem is one aggregated output line: an ingredient with the
// total amount summed across every recipe in the cart.
type ShoppingListItem struct {
	IngredientID    int64  `json:"ingredient_id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

type ShoppingCartService interface {
	Add(ctx context.Context, userID, recipeID int64) (*dto.RecipeShortResponse, error)
	Remove(ctx context.Context, userID, recipeID int64) error
	ShoppingList(ctx context.Context, userID int64) ([]ShoppingListItem, error)
	RenderShoppingList(items []ShoppingListItem) string
}

type shoppingCartService struct {
	cartRepo   repository.ShoppingCartRepository
	recipeRepo repository.RecipeRepository
}

func NewShoppingCartService(cartRepo repository.ShoppingCartRepository, recipeRepo repository.RecipeRepository) ShoppingCartService {
	return &shoppingCartService{cartRepo: cartRepo, recipeRepo: recipeRepo}
}

func (s *shoppingCartService) Add(ctx context.Context, userID, recipeID int64) (*dto.RecipeShortResponse, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.cartRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateCartEntry
	}

	entry := &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.cartRepo.Create(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateCartEntry
		}
		return nil, err
	}

	resp := dto.FromRecipeModelShort(*recipe)
	return &resp, nil
}

func (s *shoppingCartService) Remove(ctx context.Context, userID, recipeID int64) error {
	deleted, err := s.cartRepo.Delete(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCartEntryNotFound
	}
	return nil
}

// ShoppingList aggregates the user's cart into one line per ingredient.
func (s *shoppingCartService) ShoppingList(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	rows, err := s.cartRepo.CartIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AggregateCart(rows), nil
}

// AggregateCart groups cart occurrences by ingredient identity (id, never
// the name string) and sums amounts. Output keeps the first-seen order of
// the input rows, which the repository supplies in ascending ingredient id.
func AggregateCart(rows []models.CartIngredient) []ShoppingListItem {
	items := make([]ShoppingListItem, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		if i, ok := index[row.IngredientID]; ok {
			items[i].Total += row.Amount
			continue
		}
		index[row.IngredientID] = len(items)
		items = append(items, ShoppingListItem{
			IngredientID:    row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Total:           row.Amount,
		})
	}

	return items
}

// RenderShoppingList produces the downloadable text: one line per
// ingredient. An empty cart renders to an empty string.
func (s *shoppingCartService) RenderShoppingList(items []ShoppingListItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s %d %s\n", item.Name, item.Total, item.MeasurementUnit)
	}
	return b.String()
}
