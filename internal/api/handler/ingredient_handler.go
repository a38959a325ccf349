package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"recipehub/internal/api/dto"
	"recipehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	ingredientService service.IngredientService
}

func NewIngredientHandler(ingredientService service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

// List returns ingredients, optionally narrowed by a case-insensitive
// name substring via ?name=.
func (h *IngredientHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredients, err := h.ingredientService.List(ctx, c.Query("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		resp = append(resp, dto.FromIngredientModel(i))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredient, err := h.ingredientService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromIngredientModel(*ingredient))
}
