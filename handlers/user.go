package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"isoko/store"
)

type UserHandler struct {
	users   store.UserStore
	follows store.FollowStore
}

func NewUserHandler(users store.UserStore, follows store.FollowStore) *UserHandler {
	return &UserHandler{users: users, follows: follows}
}

// POST /api/users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	targetID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if targetID == userID {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot follow yourself")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong")
		return
	}

	err := h.follows.Insert(ctx, userID, targetID)
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to follow user")
		return
	}
	// Following twice is a no-op, not an error.
	respond(c, http.StatusOK, gin.H{"following": true})
}

// DELETE /api/users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	targetID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.follows.Delete(ctx, userID, targetID); err != nil {
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to unfollow user")
		return
	}
	respond(c, http.StatusOK, gin.H{"following": false})
}
