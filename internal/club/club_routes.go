package club

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

// RegisterClubRoutes wires club, settings and membership endpoints.
func RegisterClubRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewClubRepository(db)
	controller := NewClubController(repo, appConfig)

	clubs := router.Group("/clubs")
	clubs.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		clubs.POST("", controller.CreateClub)
		clubs.GET("", controller.GetAllClubs)
		clubs.GET("/:club_id", controller.GetClubByID)

		adminOnly := clubs.Group("")
		adminOnly.Use(middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin))
		{
			adminOnly.PUT("/:club_id/settings", controller.UpdateSettings)
			adminOnly.POST("/:club_id/members", controller.AddMember)
			adminOnly.GET("/:club_id/members", controller.GetMembers)
			adminOnly.DELETE("/:club_id/members/:user_id", controller.RemoveMember)
		}
	}

	// Platform onboarding is superadmin-only.
	platform := router.Group("/admin/clubs")
	platform.Use(
		middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
		middleware.RequireRole(user.RoleSuperAdmin),
	)
	{
		platform.POST("/:club_id/approve", controller.ApproveClub)
		platform.POST("/:club_id/suspend", controller.SuspendClub)
	}
}
