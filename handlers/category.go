package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/store"
)

type CategoryHandler struct {
	categories store.CategoryStore
}

func NewCategoryHandler(categories store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CATEGORIES_ERROR", "Failed to load categories")
		return
	}
	respond(c, http.StatusOK, categories)
}
