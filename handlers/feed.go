package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"isoko/services"
)

type FeedHandler struct {
	feeds *services.FeedService
}

func NewFeedHandler(feeds *services.FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func feedOptions(c *gin.Context) services.FeedOptions {
	return services.FeedOptions{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
}

// GET /api/feed
func (h *FeedHandler) Home(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.feeds.Home(ctx, viewerID(c), feedOptions(c))
	if err != nil {
		respondServiceError(c, err, "FEED_ERROR")
		return
	}
	respond(c, http.StatusOK, page)
}

// GET /api/feed/trending
func (h *FeedHandler) Trending(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.feeds.Trending(ctx, viewerID(c), feedOptions(c))
	if err != nil {
		respondServiceError(c, err, "FEED_ERROR")
		return
	}
	respond(c, http.StatusOK, page)
}

// GET /api/feed/nearby?lat=&lng=&radius=
func (h *FeedHandler) Nearby(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	opts := services.NearbyOptions{
		Lat:          queryFloat(c, "lat"),
		Lng:          queryFloat(c, "lng"),
		RadiusMeters: queryInt(c, "radius"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}

	page, err := h.feeds.Nearby(ctx, viewerID(c), opts)
	if err != nil {
		respondServiceError(c, err, "FEED_ERROR")
		return
	}
	respond(c, http.StatusOK, page)
}

// GET /api/feed/search?q=
func (h *FeedHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.feeds.Search(ctx, viewerID(c), c.Query("q"), feedOptions(c))
	if err != nil {
		respondServiceError(c, err, "FEED_ERROR")
		return
	}
	respond(c, http.StatusOK, page)
}

// GET /api/feed/category/:slug
func (h *FeedHandler) ByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.feeds.ByCategory(ctx, viewerID(c), c.Param("slug"), feedOptions(c))
	if err != nil {
		respondServiceError(c, err, "FEED_ERROR")
		return
	}
	respond(c, http.StatusOK, page)
}
