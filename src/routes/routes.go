package routes

import (
	"cinelog/src/config"
	"cinelog/src/middleware"
	files "cinelog/src/modules/files/controllers"
	movies "cinelog/src/modules/movies/controllers"
	reviews "cinelog/src/modules/reviews/controllers"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if config.CheckConnection() {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		}
	})

	api := router.Group("/api/v1")
	api.Use(middleware.CurrentUser())

	// Reads are open; every mutation requires an authenticated caller.
	moviesRoutes := api.Group("/movies")
	{
		moviesRoutes.GET("", movies.ListMovies)
		moviesRoutes.GET(":id", movies.GetMovie)
		moviesRoutes.POST("", middleware.RequireAuth(), movies.CreateMovie)
		moviesRoutes.PUT(":id", middleware.RequireAuth(), movies.UpdateMovie)
		moviesRoutes.PATCH(":id", middleware.RequireAuth(), movies.PatchMovie)
		moviesRoutes.DELETE(":id", middleware.RequireAuth(), movies.DeleteMovie)
	}

	genresRoutes := api.Group("/genres")
	{
		genresRoutes.GET("", movies.ListGenres)
		genresRoutes.POST("", middleware.RequireAuth(), movies.CreateGenre)
		genresRoutes.DELETE(":id", middleware.RequireAuth(), movies.DeleteGenre)
	}

	reviewsRoutes := api.Group("/reviews")
	{
		reviewsRoutes.GET("", reviews.ListReviews)
		reviewsRoutes.GET(":id", reviews.GetReview)
		reviewsRoutes.POST("", middleware.RequireAuth(), reviews.CreateReview)
		reviewsRoutes.PUT(":id", middleware.RequireAuth(), reviews.UpdateReview)
		reviewsRoutes.PATCH(":id", middleware.RequireAuth(), reviews.PatchReview)
		reviewsRoutes.DELETE(":id", middleware.RequireAuth(), reviews.DeleteReview)
		reviewsRoutes.POST(":id/like", middleware.RequireAuth(), reviews.LikeReview)
		reviewsRoutes.DELETE(":id/like", middleware.RequireAuth(), reviews.UnlikeReview)
	}

	postersRoutes := api.Group("/posters")
	{
		postersRoutes.POST("", middleware.RequireAuth(), files.UploadPoster)
		postersRoutes.GET("/*filepath", files.GetPoster)
	}
}
