package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, appConfig)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", controller.Register)
		authRoutes.POST("/login", controller.Login)
		authRoutes.POST("/refresh-token", controller.RefreshToken)
	}

	protected := router.Group("/auth")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		protected.GET("/me", controller.GetProfile)
		protected.POST("/logout", controller.Logout)
	}
}
