package announcement

import "github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"

// Announcement is a club-scoped notice shown to members.
type Announcement struct {
	models.BaseModel
	ClubID    uint   `gorm:"not null;index" json:"club_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Body      string `gorm:"type:text;not null" json:"body"`
	Pinned    bool   `gorm:"default:false" json:"pinned"`
	CreatedBy uint   `gorm:"not null" json:"created_by"`
}

type AnnouncementInput struct {
	Title  string `json:"title" binding:"required,max=200"`
	Body   string `json:"body" binding:"required"`
	Pinned bool   `json:"pinned"`
}
