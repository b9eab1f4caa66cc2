package report

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/payment"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

// RegisterReportRoutes wires the admin reporting endpoints.
func RegisterReportRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	controller := NewReportController(payment.NewPaymentRepository(db), club.NewClubRepository(db), appConfig)

	reports := router.Group("/clubs/:club_id/reports")
	reports.Use(
		middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
		middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin),
	)
	{
		reports.GET("/reconciliation", controller.GetReconciliation)
	}
}
