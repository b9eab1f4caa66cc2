package expense

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

func RegisterExpenseRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewExpenseRepository(db)
	controller := NewExpenseController(repo)

	club := router.Group("/clubs/:club_id")
	club.Use(
		middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
		middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin),
	)
	{
		club.POST("/expense-categories", controller.CreateCategory)
		club.GET("/expense-categories", controller.GetClubCategories)
		club.DELETE("/expense-categories/:id", controller.DeleteCategory)

		club.POST("/expenses", controller.CreateExpense)
		club.GET("/expenses", controller.GetClubExpenses)
		club.DELETE("/expenses/:id", controller.DeleteExpense)
	}
}
