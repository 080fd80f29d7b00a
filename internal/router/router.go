package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/internal/handlers"
	"github.com/projecto-dev/projecto/internal/middleware"
	"github.com/projecto-dev/projecto/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/accounts", handlers.RegisterUser)
		api.POST("/token", handlers.ObtainTokenPair)
		api.POST("/token/refresh", handlers.RefreshToken)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/home", handlers.Me)
			authed.GET("/me", handlers.Me)
			authed.POST("/logout", handlers.LogoutUser)

			authed.POST("/projectleads", handlers.CreateProject)
			authed.GET("/projectleads", handlers.ListOwnedProjects)
			authed.GET("/projects", handlers.DiscoverProjects)

			authed.POST("/projectrequests", handlers.RequestJoin)
			authed.GET("/projectrequestsdisplay", handlers.ListPendingRequests)
			authed.POST("/projectmembers", handlers.AcceptMember)
			authed.POST("/projectreject", handlers.RejectRequest)
			authed.GET("/projectmembersdisplay", handlers.ListProjectMembers)
			authed.GET("/joinedprojects", handlers.ListJoinedProjects)
			authed.GET("/pendingprojects", handlers.ListPendingProjects)
			authed.GET("/projectcount", handlers.ProjectCount)
		}
	}

	return r
}
