package main

import (
	"log/slog"
	"os"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/announcement"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/expense"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/payment"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/reservation"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/tournament"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/logging"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/routes"
)

// @title Recreational Racketball Club API
// @version 1.0
// @description Multi-tenant club management backend: reservations, court fee
// @description pricing, payment ledger synchronization and reconciliation.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	logging.Setup()

	if err := config.Initialize(); err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&club.Club{}, &club.Settings{}, &club.Member{},
		&reservation.Reservation{},
		&payment.Payment{},
		&announcement.Announcement{},
		&expense.Category{}, &expense.Expense{},
		&tournament.Tournament{}, &tournament.Entry{},
	)
	if err != nil {
		slog.Error("auto-migrate failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrated")

	r := routes.SetupRoutes(config.DB, cfg)

	slog.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
