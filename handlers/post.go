package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/services"
)

type PostHandler struct {
	interactions *services.InteractionService
}

func NewPostHandler(interactions *services.InteractionService) *PostHandler {
	return &PostHandler{interactions: interactions}
}

// POST /api/posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	res, err := h.interactions.ToggleLike(ctx, postID, userID)
	if err != nil {
		respondServiceError(c, err, "LIKE_ERROR")
		return
	}
	respond(c, http.StatusOK, res)
}

// POST /api/posts/:id/bookmark
func (h *PostHandler) ToggleBookmark(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	res, err := h.interactions.ToggleBookmark(ctx, postID, userID)
	if err != nil {
		respondServiceError(c, err, "BOOKMARK_ERROR")
		return
	}
	respond(c, http.StatusOK, res)
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// POST /api/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	view, err := h.interactions.AddComment(ctx, postID, userID, req.Content)
	if err != nil {
		respondServiceError(c, err, "COMMENT_ERROR")
		return
	}
	respond(c, http.StatusCreated, view)
}

// GET /api/posts/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.interactions.Comments(ctx, postID, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondServiceError(c, err, "COMMENT_ERROR")
		return
	}
	respond(c, http.StatusOK, page)
}

// POST /api/posts/:id/share
func (h *PostHandler) Share(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	res, err := h.interactions.Share(ctx, postID)
	if err != nil {
		respondServiceError(c, err, "SHARE_ERROR")
		return
	}
	respond(c, http.StatusOK, res)
}
