package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inkpress-dev/inkpress/internal/handlers"
	"github.com/inkpress-dev/inkpress/internal/middleware"
	"github.com/inkpress-dev/inkpress/internal/types"
	"github.com/inkpress-dev/inkpress/web"
)

func NewRouter() *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/events", handlers.Events)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		posts := api.Group("/posts")
		{
			// Public reads
			posts.GET("", handlers.ListPosts)
			posts.GET("/:id", handlers.GetPost)
			posts.GET("/:id/comments", handlers.ListComments)

			// Authenticated writes
			posts.POST("", middleware.AuthMiddleware(), handlers.CreatePost)
			posts.PUT("/:id", middleware.AuthMiddleware(), handlers.UpdatePost)
			posts.DELETE("/clear", middleware.AuthMiddleware(), handlers.ClearMyPosts)
			posts.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeletePost)
			posts.POST("/:id/comments", middleware.AuthMiddleware(), handlers.CreateComment)
			posts.DELETE("/:id/comments/:commentId", middleware.AuthMiddleware(), handlers.DeleteComment)
		}
	}

	// Everything outside /api serves the embedded client, with an index
	// fallback so client-side routes survive a reload.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		web.Serve(c.Writer, c.Request)
	})

	return r
}
