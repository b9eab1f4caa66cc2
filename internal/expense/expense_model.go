package expense

import (
	"time"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
)

// Category groups club expenses for reporting (utilities, maintenance,
// equipment and so on).
type Category struct {
	models.BaseModel
	ClubID uint   `gorm:"not null;index;uniqueIndex:idx_club_category_name" json:"club_id"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_club_category_name" json:"name"`
}

// Expense is a single ledger entry against a club.
type Expense struct {
	models.BaseModel
	ClubID      uint      `gorm:"not null;index" json:"club_id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	RecordedBy  uint      `gorm:"not null" json:"recorded_by"`
}

type CategoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ExpenseInput struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required" example:"2025-06-15"`
}
