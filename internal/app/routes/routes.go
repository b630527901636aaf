package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/campushub/internal/app/controllers"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	organizationController *controllers.OrganizationController,
	eventController *controllers.EventController,
	participationController *controllers.ParticipationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public read routes ---
	v1.GET("/users/:id", userController.GetUser)
	v1.GET("/organizations", organizationController.ListOrganizations)
	v1.GET("/organizations/:id", organizationController.GetOrganization)
	v1.GET("/events", eventController.ListEvents)
	v1.GET("/events/:id", eventController.GetEvent)
	v1.GET("/events/slug/:slug", eventController.GetEventBySlug)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		authenticated.PUT("/users/:id", userController.UpdateUser)

		// Deletes are super-admin only; the role check short-circuits before
		// the service-level policy evaluation.
		superAdminOnly := authMiddleware.RoleRequired(models.RoleSuperAdmin)

		authenticated.POST("/organizations", organizationController.CreateOrganization)
		authenticated.PUT("/organizations/:id", organizationController.UpdateOrganization)
		authenticated.DELETE("/organizations/:id", superAdminOnly, organizationController.DeleteOrganization)

		authenticated.POST("/events", eventController.CreateEvent)
		authenticated.PUT("/events/:id", eventController.UpdateEvent)
		authenticated.DELETE("/events/:id", superAdminOnly, eventController.DeleteEvent)

		authenticated.POST("/events/:id/join", participationController.JoinEvent)
		authenticated.POST("/events/:id/leave", participationController.LeaveEvent)
		authenticated.GET("/events/:id/participants", participationController.ListParticipants)
	}
}
