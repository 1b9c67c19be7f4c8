package router

import (
	"time"

	"authorsheaven/controllers"
	"authorsheaven/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// reads are open to anonymous callers; a token, when present, only
	// personalizes the rating view
	public := api.Group("", middleware.OptionalAuthMiddleware())
	{
		public.GET("/articles", controllers.GetArticles)
		public.GET("/articles/top", controllers.GetTopArticles)
		public.GET("/articles/:slug", controllers.GetArticle)
		public.GET("/articles/:slug/comments", controllers.ListComments)
		public.GET("/articles/:slug/comments/:id", controllers.GetComment)
		public.GET("/articles/:slug/rate", controllers.GetRating)
		public.GET("/tags", controllers.GetTags)
	}

	protected := api.Group("", middleware.AuthMiddleware())
	{
		protected.POST("/articles", controllers.CreateArticle)
		protected.PUT("/articles/:slug", controllers.UpdateArticle)
		protected.DELETE("/articles/:slug", controllers.DeleteArticle)

		protected.POST("/articles/:slug/comments", controllers.AddComment)
		protected.POST("/articles/:slug/comments/:id", controllers.ReplyToComment)
		protected.PUT("/articles/:slug/comments/:id", controllers.UpdateComment)
		protected.DELETE("/articles/:slug/comments/:id", controllers.DeleteComment)

		protected.POST("/articles/:slug/rate", controllers.RateArticle)
		protected.PUT("/articles/:slug/rate", controllers.UpdateRating)
		protected.DELETE("/articles/:slug/rate", controllers.DeleteRating)

		protected.POST("/articles/:slug/favourite", controllers.FavouriteArticle)
		protected.DELETE("/articles/:slug/favourite", controllers.UnfavouriteArticle)

		protected.POST("/articles/:slug/like", controllers.ReactToArticle)
		protected.DELETE("/articles/:slug/like", controllers.RemoveReaction)
	}

	return r
}
