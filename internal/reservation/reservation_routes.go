package reservation

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/notify"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

// RegisterReservationRoutes wires reservation endpoints. The payment
// synchronizer is injected by the router to avoid a package cycle with the
// payment ledger.
func RegisterReservationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, syncer PaymentSyncer, events notify.Publisher) {
	repo := NewReservationRepository(db)
	clubRepo := club.NewClubRepository(db)
	controller := NewReservationController(repo, clubRepo, syncer, events, appConfig)

	reservations := router.Group("/reservations")
	reservations.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		reservations.POST("", controller.CreateReservation)
		reservations.GET("/:reservation_id", controller.GetReservationByID)
		reservations.PUT("/:reservation_id/players", controller.UpdatePlayers)
		reservations.DELETE("/:reservation_id", controller.CancelReservation)

		adminOnly := reservations.Group("")
		adminOnly.Use(middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin))
		{
			adminOnly.POST("/:reservation_id/sync-payments", controller.ResyncPayments)
		}
	}

	clubScoped := router.Group("/clubs/:club_id/reservations")
	clubScoped.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		clubScoped.GET("", controller.GetClubReservations)
	}
}
