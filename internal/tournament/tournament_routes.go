package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

func RegisterTournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTournamentRepository(db)
	controller := NewTournamentController(repo)

	tournaments := router.Group("/clubs/:club_id/tournaments")
	tournaments.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		tournaments.GET("", controller.GetClubTournaments)
		tournaments.GET("/:id", controller.GetTournamentByID)
		tournaments.GET("/:id/standings", controller.GetStandings)

		adminOnly := tournaments.Group("")
		adminOnly.Use(middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin))
		{
			adminOnly.POST("", controller.CreateTournament)
			adminOnly.PUT("/:id/status", controller.UpdateStatus)
			adminOnly.POST("/:id/entries", controller.AddEntry)
			adminOnly.PUT("/:id/entries/:entry_id", controller.RecordResult)
			adminOnly.DELETE("/:id/entries/:entry_id", controller.RemoveEntry)
		}
	}
}
