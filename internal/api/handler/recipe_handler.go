package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/middleware"
	"recipehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

type RecipeHandler struct {
	recipeService service.RecipeService
	favService    service.FavoriteService
	cartService   service.ShoppingCartService
}

func NewRecipeHandler(
	recipeService service.RecipeService,
	favService service.FavoriteService,
	cartService service.ShoppingCartService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		favService:    favService,
		cartService:   cartService,
	}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optionalAuth gin.HandlerFunc) {
	rg.GET("", optionalAuth, h.List)
	rg.POST("", auth, h.Create)
	rg.GET("/download_shopping_cart", auth, h.DownloadShoppingCart)
	rg.GET("/:id", optionalAuth, h.Get)
	rg.PATCH("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)
	rg.POST("/:id/favorite", auth, h.Favorite)
	rg.DELETE("/:id/favorite", auth, h.Unfavorite)
	rg.POST("/:id/shopping_cart", auth, h.AddToCart)
	rg.DELETE("/:id/shopping_cart", auth, h.RemoveFromCart)
}

func (h *RecipeHandler) List(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := parseRecipeFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, total, err := h.recipeService.List(ctx, middleware.CurrentUserID(c), filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": recipes,
	})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.recipeService.Get(ctx, middleware.CurrentUserID(c), recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.recipeService.Create(ctx, middleware.CurrentUserID(c), req)
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.recipeService.Update(ctx, middleware.CurrentUserID(c), recipeID, req)
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.recipeService.Delete(ctx, middleware.CurrentUserID(c), recipeID); err != nil {
		h.writeRecipeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.favService.Add(ctx, middleware.CurrentUserID(c), recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateFavorite):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.favService.Remove(ctx, middleware.CurrentUserID(c), recipeID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.cartService.Add(ctx, middleware.CurrentUserID(c), recipeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateCartEntry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.cartService.Remove(ctx, middleware.CurrentUserID(c), recipeID); err != nil {
		if errors.Is(err, service.ErrCartEntryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart aggregates the cart into one line per ingredient
// and serves it as a text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.cartService.ShoppingList(ctx, middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.cartService.RenderShoppingList(items)))
}

func (h *RecipeHandler) writeRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyField),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrInvalidIngredientAmount),
		errors.Is(err, service.ErrUnknownIngredient),
		errors.Is(err, service.ErrUnknownTag):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parsePagination(c *gin.Context) (page, limit int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	return page, limit, nil
}

func parseRecipeFilter(c *gin.Context) (service.RecipeListFilter, error) {
	var filter service.RecipeListFilter

	if raw, ok := c.GetQuery("author"); ok {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid author")
		}
		filter.AuthorID = authorID
	}

	if tags, ok := c.GetQueryArray("tags"); ok {
		filter.TagSlugs = tags
	}

	var err error
	if filter.OnlyFavorited, err = parseFlag(c, "is_favorited"); err != nil {
		return filter, err
	}
	if filter.OnlyInCart, err = parseFlag(c, "is_in_shopping_cart"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseFlag(c *gin.Context, name string) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return false, nil
	}
	switch raw {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s", name)
	}
}
