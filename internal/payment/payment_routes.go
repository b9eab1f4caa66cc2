package payment

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/notify"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/reservation"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

// RegisterPaymentRoutes wires the payment ledger endpoints. All transitions
// are admin actions.
func RegisterPaymentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, events notify.Publisher) *Synchronizer {
	repo := NewPaymentRepository(db)
	syncer := NewSynchronizer(repo, reservation.NewReservationRepository(db))
	controller := NewPaymentController(repo, syncer, events, appConfig)

	payments := router.Group("/payments")
	payments.Use(
		middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
		middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin),
	)
	{
		payments.POST("", controller.CreateManualCharge)
		payments.GET("/:payment_id", controller.GetPaymentByID)
		payments.POST("/:payment_id/approve", controller.ApprovePayment)
		payments.POST("/:payment_id/record", controller.RecordPayment)
		payments.POST("/:payment_id/cancel", controller.CancelPayment)
		payments.POST("/:payment_id/unrecord", controller.UnrecordPayment)
	}

	clubScoped := router.Group("/clubs/:club_id/payments")
	clubScoped.Use(
		middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
		middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin),
	)
	{
		clubScoped.GET("", controller.GetClubPayments)
	}

	return syncer
}
