package routes

import (
	"servedc-be/controllers"
	"servedc-be/middlewares"

	"github.com/gin-gonic/gin"
)

// PostRoutes sets up the announcement routes
func PostRoutes(r *gin.Engine) {
	post := r.Group("/api/post")
	{
		post.POST("/create", middlewares.PostRateLimiter(middlewares.PostLimit()), controllers.CreatePost)
		post.GET("/", controllers.ListPosts)
		post.GET("/:id", controllers.GetPost)
		post.POST("/:id/seen", controllers.MarkPostSeen)
		post.POST("/:id/solve", controllers.MarkPostSolved)
		post.POST("/:id/reply", controllers.AddReply)
	}

	r.GET("/api/map/recent", controllers.RecentPosts)
	r.GET("/api/analytics", controllers.GetPostAnalytics)
}
