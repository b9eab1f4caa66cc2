package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	_ "github.com/roel-sundiam/RecreationalRacketBall-sub000/docs"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/announcement"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/auth"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/expense"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/notify"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/payment"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/report"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/reservation"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/tournament"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Websocket hub pushes ledger-change events to connected clients.
	hub := notify.NewHub()
	r.GET("/ws", hub.ServeWS)

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	club.RegisterClubRoutes(api, db, appConfig)

	// The payment synchronizer doubles as the reservation package's syncer.
	syncer := payment.RegisterPaymentRoutes(api, db, appConfig, hub)
	reservation.RegisterReservationRoutes(api, db, appConfig, syncer, hub)

	report.RegisterReportRoutes(api, db, appConfig)
	announcement.RegisterAnnouncementRoutes(api, db, appConfig)
	expense.RegisterExpenseRoutes(api, db, appConfig)
	tournament.RegisterTournamentRoutes(api, db, appConfig)

	return r
}
