package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"isoko/config"
	"isoko/handlers"
	"isoko/middleware"
	"isoko/services"
	"isoko/store"
)

func SetupRouter(cfg *config.Config, st *store.Store) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	feedSvc := services.NewFeedService(st)
	interactionSvc := services.NewInteractionService(st)

	auth := handlers.NewAuthHandler(st.Users, cfg.JWTSecret, cfg.TokenTTL)
	feed := handlers.NewFeedHandler(feedSvc)
	post := handlers.NewPostHandler(interactionSvc)
	category := handlers.NewCategoryHandler(st.Categories)
	user := handlers.NewUserHandler(st.Users, st.Follows)

	api := router.Group("/api")

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.GET("/auth/me", middleware.RequireAuth(cfg.JWTSecret), auth.Me)

	// Feeds are public but personalize flags for signed-in readers.
	feeds := api.Group("/feed", middleware.OptionalAuth(cfg.JWTSecret))
	feeds.GET("", feed.Home)
	feeds.GET("/trending", feed.Trending)
	feeds.GET("/nearby", feed.Nearby)
	feeds.GET("/search", feed.Search)
	feeds.GET("/category/:slug", feed.ByCategory)

	posts := api.Group("/posts")
	posts.GET("/:id/comments", post.ListComments)
	posts.POST("/:id/share", post.Share)

	protected := posts.Group("", middleware.RequireAuth(cfg.JWTSecret))
	protected.POST("/:id/like", post.ToggleLike)
	protected.POST("/:id/bookmark", post.ToggleBookmark)
	protected.POST("/:id/comments", post.AddComment)

	users := api.Group("/users", middleware.RequireAuth(cfg.JWTSecret))
	users.POST("/:id/follow", user.Follow)
	users.DELETE("/:id/follow", user.Unfollow)

	api.GET("/categories", category.List)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Endpoint not found",
				"code":    "NOT_FOUND",
			})
			return
		}
		c.Next()
	})

	return router
}
