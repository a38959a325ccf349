package service

import (
	"context"
	"testing"

	"recipehub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestAggregateCart_SumsAcrossRecipes(t *testing.T) {
	// two recipes in the cart both use flour; amounts are summed
	rows := []models.CartIngredient{
		{IngredientID: 1, Name: "flour", MeasurementUnit: "g", Amount: 200},
		{IngredientID: 2, Name: "egg", MeasurementUnit: "pcs", Amount: 3},
		{IngredientID: 1, Name: "flour", MeasurementUnit: "g", Amount: 300},
	}

	items := AggregateCart(rows)

	assert.Len(t, items, 2)
	assert.Equal(t, "flour", items[0].Name)
	assert.Equal(t, 500, items[0].Total)
	assert.Equal(t, "egg", items[1].Name)
	assert.Equal(t, 3, items[1].Total)
}

func TestAggregateCart_GroupsByIDNotName(t *testing.T) {
	// same name, different ingredient rows (e.g. sugar in g vs tsp)
	rows := []models.CartIngredient{
		{IngredientID: 1, Name: "sugar", MeasurementUnit: "g", Amount: 100},
		{IngredientID: 2, Name: "sugar", MeasurementUnit: "tsp", Amount: 2},
	}

	items := AggregateCart(rows)

	assert.Len(t, items, 2)
	assert.Equal(t, 100, items[0].Total)
	assert.Equal(t, "g", items[0].MeasurementUnit)
	assert.Equal(t, 2, items[1].Total)
	assert.Equal(t, "tsp", items[1].MeasurementUnit)
}

func TestAggregateCart_PreservesFirstSeenOrder(t *testing.T) {
	rows := []models.CartIngredient{
		{IngredientID: 5, Name: "milk", MeasurementUnit: "ml", Amount: 250},
		{IngredientID: 3, Name: "butter", MeasurementUnit: "g", Amount: 50},
		{IngredientID: 5, Name: "milk", MeasurementUnit: "ml", Amount: 100},
	}

	items := AggregateCart(rows)

	assert.Equal(t, []int64{5, 3}, []int64{items[0].IngredientID, items[1].IngredientID})
}

func TestAggregateCart_Empty(t *testing.T) {
	items := AggregateCart(nil)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRenderShoppingList(t *testing.T) {
	svc := NewShoppingCartService(new(MockShoppingCartRepository), new(MockRecipeRepository))

	items := []ShoppingListItem{
		{IngredientID: 1, Name: "flour", MeasurementUnit: "g", Total: 500},
		{IngredientID: 2, Name: "egg", MeasurementUnit: "pcs", Total: 3},
	}

	text := svc.RenderShoppingList(items)

	assert.Equal(t, "flour 500 g\negg 3 pcs\n", text)
}

func TestRenderShoppingList_Empty(t *testing.T) {
	svc := NewShoppingCartService(new(MockShoppingCartRepository), new(MockRecipeRepository))

	assert.Equal(t, "", svc.RenderShoppingList(nil))
}

func TestShoppingList_AggregatesRepositoryRows(t *testing.T) {
	cartRepo := new(MockShoppingCartRepository)
	svc := NewShoppingCartService(cartRepo, new(MockRecipeRepository))

	rows := []models.CartIngredient{
		{IngredientID: 1, Name: "flour", MeasurementUnit: "g", Amount: 200},
		{IngredientID: 1, Name: "flour", MeasurementUnit: "g", Amount: 300},
	}
	cartRepo.On("CartIngredients", mock.Anything, int64(7)).Return(rows, nil)

	items, err := svc.ShoppingList(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 500, items[0].Total)
	cartRepo.AssertExpectations(t)
}

func TestCartAdd_Success(t *testing.T) {
	cartRepo := new(MockShoppingCartRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewShoppingCartService(cartRepo, recipeRepo)

	recipe := &models.Recipe{ID: 5, Name: "Soup", Image: "recipes/images/s.png", CookingTime: 40}
	recipeRepo.On("GetByID", mock.Anything, int64(5)).Return(recipe, nil)
	cartRepo.On("Exists", mock.Anything, int64(7), int64(5)).Return(false, nil)
	cartRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ShoppingCart")).Return(nil)

	resp, err := svc.Add(context.Background(), 7, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "Soup", resp.Name)
	cartRepo.AssertExpectations(t)
}

func TestCartAdd_Duplicate(t *testing.T) {
	cartRepo := new(MockShoppingCartRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewShoppingCartService(cartRepo, recipeRepo)

	recipeRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Recipe{ID: 5}, nil)
	cartRepo.On("Exists", mock.Anything, int64(7), int64(5)).Return(true, nil)

	_, err := svc.Add(context.Background(), 7, 5)

	assert.Equal(t, ErrDuplicateCartEntry, err)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartAdd_RecipeMissing(t *testing.T) {
	cartRepo := new(MockShoppingCartRepository)
	recipeRepo := new(MockRecipeRepository)
	svc := NewShoppingCartService(cartRepo, recipeRepo)

	recipeRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Add(context.Background(), 7, 99)

	assert.Equal(t, ErrRecipeNotFound, err)
}

func TestCartRemove_NotInCart(t *testing.T) {
	cartRepo := new(MockShoppingCartRepository)
	svc := NewShoppingCartService(cartRepo, new(MockRecipeRepository))

	cartRepo.On("Delete", mock.Anything, int64(7), int64(5)).Return(false, nil)

	err := svc.Remove(context.Background(), 7, 5)

	assert.Equal(t, ErrCartEntryNotFound, err)
}
