package club

import (
	"time"

	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
)

type ClubStatus string

const (
	StatusPending   ClubStatus = "pending"
	StatusApproved  ClubStatus = "approved"
	StatusSuspended ClubStatus = "suspended"
)

// Pricing models supported by club settings.
const (
	PricingVariable    = "variable"
	PricingFixedHourly = "fixed-hourly"
	PricingFixedDaily  = "fixed-daily"
)

type Club struct {
	gorm.Model
	Name        string     `gorm:"not null;uniqueIndex" json:"name"`
	Code        string     `gorm:"not null;uniqueIndex" json:"code"`
	Description string     `json:"description"`
	Status      ClubStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	OwnerID     uint       `gorm:"index" json:"owner_id"`
	Owner       user.User  `json:"-"`
	CourtCount  int        `gorm:"default:1" json:"court_count"`
	Settings    Settings   `json:"settings"`
	Members     []Member   `json:"-"`
}

// Settings is the per-club pricing configuration. It is owned by the club
// and read by the pricing evaluator, never mutated by it.
type Settings struct {
	gorm.Model
	ClubID            uint            `gorm:"uniqueIndex;not null" json:"club_id"`
	PricingModel      string          `gorm:"type:VARCHAR(20);default:'variable'" json:"pricing_model"`
	PeakHourFee       float64         `gorm:"default:0" json:"peak_hour_fee"`
	OffPeakHourFee    float64         `gorm:"default:0" json:"off_peak_hour_fee"`
	FixedHourlyFee    float64         `gorm:"default:0" json:"fixed_hourly_fee"`
	FixedDailyFee     float64         `gorm:"default:0" json:"fixed_daily_fee"`
	GuestFee          float64         `gorm:"default:0" json:"guest_fee"`
	PeakHours         models.IntSlice `gorm:"type:jsonb;default:'[]'" json:"peak_hours"`
	OpeningHour       int             `gorm:"default:6" json:"opening_hour"`
	ClosingHour       int             `gorm:"default:22" json:"closing_hour"`
	Currency          string          `gorm:"type:VARCHAR(8);default:'PHP'" json:"currency"`
	ServiceFeePercent float64         `gorm:"default:20" json:"service_fee_percent"`
}

// Member is the club membership join row. Club-level role is separate from
// the platform role on user.User.
type Member struct {
	gorm.Model
	ClubID   uint       `gorm:"index:idx_club_user,unique;not null" json:"club_id"`
	UserID   uint       `gorm:"index:idx_club_user,unique;not null" json:"user_id"`
	User     user.User  `json:"user"`
	Role     string     `gorm:"type:VARCHAR(20);default:'member'" json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
	Active   bool       `gorm:"default:true" json:"active"`
}

type ClubInput struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Code        string `json:"code" binding:"required,alphanum,min=2,max=16"`
	Description string `json:"description"`
	CourtCount  int    `json:"court_count" binding:"omitempty,min=1"`
}

type SettingsInput struct {
	PricingModel      string  `json:"pricing_model" binding:"required,oneof=variable fixed-hourly fixed-daily"`
	PeakHourFee       float64 `json:"peak_hour_fee" binding:"min=0"`
	OffPeakHourFee    float64 `json:"off_peak_hour_fee" binding:"min=0"`
	FixedHourlyFee    float64 `json:"fixed_hourly_fee" binding:"min=0"`
	FixedDailyFee     float64 `json:"fixed_daily_fee" binding:"min=0"`
	GuestFee          float64 `json:"guest_fee" binding:"min=0"`
	PeakHours         []int   `json:"peak_hours" binding:"dive,min=0,max=23"`
	OpeningHour       int     `json:"opening_hour" binding:"min=0,max=23"`
	ClosingHour       int     `json:"closing_hour" binding:"min=1,max=24"`
	Currency          string  `json:"currency" binding:"omitempty,len=3"`
	ServiceFeePercent float64 `json:"service_fee_percent" binding:"min=0,max=100"`
}

type MemberInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=member admin"`
}
