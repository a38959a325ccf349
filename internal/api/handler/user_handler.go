package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"recipehub/internal/api/middleware"
	"recipehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	subService  service.SubscriptionService
}

func NewUserHandler(userService service.UserService, subService service.SubscriptionService) *UserHandler {
	return &UserHandler{userService: userService, subService: subService}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optionalAuth gin.HandlerFunc) {
	rg.GET("/me", auth, h.Me)
	rg.GET("/subscriptions", auth, h.Subscriptions)
	rg.GET("/:id", optionalAuth, h.Get)
	rg.POST("/:id/subscribe", auth, h.Subscribe)
	rg.DELETE("/:id/subscribe", auth, h.Unsubscribe)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.Get(ctx, userID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.Get(ctx, middleware.CurrentUserID(c), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipesLimit, err := parseRecipesLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	authors, total, err := h.subService.List(ctx, middleware.CurrentUserID(c), page, limit, recipesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": authors,
	})
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	recipesLimit, err := parseRecipesLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	author, err := h.subService.Subscribe(ctx, middleware.CurrentUserID(c), authorID, recipesLimit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSelfSubscription), errors.Is(err, service.ErrDuplicateSubscription):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, author)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.subService.Unsubscribe(ctx, middleware.CurrentUserID(c), authorID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSubscriptionNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// parseRecipesLimit reads the optional recipes_limit query param; absent
// means no truncation of the recipe preview.
func parseRecipesLimit(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("recipes_limit")
	if !ok {
		return service.AllRecipes, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, service.ErrInvalidLimit
	}
	return n, nil
}
