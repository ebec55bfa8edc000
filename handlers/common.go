package handlers

// Shared response envelope and error translation for all handler files.

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/services"
	"isoko/store"
)

const requestTimeout = 10 * time.Second

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

// respondServiceError maps service and store errors onto HTTP statuses.
// Unknown errors fall back to a 500 with the handler's own code so a client
// can still tell which operation failed.
func respondServiceError(c *gin.Context, err error, fallbackCode string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
	default:
		respondError(c, http.StatusInternalServerError, fallbackCode, "Something went wrong")
	}
}

// currentUserID reads the authenticated user id set by RequireAuth. Handlers
// behind that middleware can rely on it being present and well formed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "AUTH_ERROR", "Invalid user ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// viewerID reads the optional viewer set by OptionalAuth. Anonymous requests
// get nil.
func viewerID(c *gin.Context) *primitive.ObjectID {
	raw := c.GetString("userId")
	if raw == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil
	}
	return &id
}

func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
