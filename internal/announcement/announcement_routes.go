package announcement

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

func RegisterAnnouncementRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAnnouncementRepository(db)
	controller := NewAnnouncementController(repo)

	announcements := router.Group("/clubs/:club_id/announcements")
	announcements.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		announcements.GET("", controller.GetClubAnnouncements)

		adminOnly := announcements.Group("")
		adminOnly.Use(middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin))
		{
			adminOnly.POST("", controller.CreateAnnouncement)
			adminOnly.PUT("/:id", controller.UpdateAnnouncement)
			adminOnly.DELETE("/:id", controller.DeleteAnnouncement)
		}
	}
}
