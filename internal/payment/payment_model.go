package payment

import (
	"time"

	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
)

type Status string

const (
	// Normal admin workflow: pending -> completed -> record.
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRecord    Status = "record"
	// Terminal alternatives reached by administrative cancel.
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodEWallet      Method = "e_wallet"
)

// Payment sources.
const (
	SourceCourtUsage = "court_usage"
	SourceMembership = "membership"
	SourceManual     = "manual"
)

// Payment is one member's financial obligation for one reservation (or a
// membership fee, or a manual administrative charge). Rows are never
// physically deleted, only status-transitioned, to preserve the audit trail.
type Payment struct {
	gorm.Model
	ClubID          uint           `gorm:"index;not null" json:"club_id"`
	UserID          *uint          `gorm:"index" json:"user_id,omitempty"`
	PlayerName      string         `json:"player_name"`
	ReservationID   *uint          `gorm:"index" json:"reservation_id,omitempty"`
	Source          string         `gorm:"type:VARCHAR(20);default:'court_usage'" json:"source"`
	Amount          float64        `gorm:"not null" json:"amount"`
	Currency        string         `gorm:"type:VARCHAR(8);default:'PHP'" json:"currency"`
	Method          Method         `gorm:"type:VARCHAR(20);default:'cash'" json:"method"`
	Status          Status         `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	DueDate         *time.Time     `json:"due_date,omitempty"`
	PaidDate        *time.Time     `json:"paid_date,omitempty"`
	ReferenceNumber string         `gorm:"uniqueIndex;not null" json:"reference_number"`
	Metadata        models.JSONMap `gorm:"type:jsonb" json:"metadata"`

	// Audit trail for admin transitions.
	ApprovedBy       *uint      `json:"approved_by,omitempty"`
	RecordedAt       *time.Time `json:"recorded_at,omitempty"`
	CorrectionReason string     `json:"correction_reason,omitempty"`
}

// Settled reports whether the payment is in a terminal paid state.
func (p *Payment) Settled() bool {
	return p.Status == StatusCompleted || p.Status == StatusRecord
}

// Active reports whether the payment still counts against its reservation.
// Failed and refunded records are kept for the audit trail but no longer
// contribute to the aggregate payment status.
func (p *Payment) Active() bool {
	return p.Status != StatusFailed && p.Status != StatusRefunded
}

type TransitionInput struct {
	Method Method `json:"method" binding:"omitempty,oneof=cash bank_transfer e_wallet"`
	Reason string `json:"reason"`
	Refund bool   `json:"refund"`
}

type ManualChargeInput struct {
	ClubID     uint    `json:"club_id" binding:"required"`
	UserID     uint    `json:"user_id" binding:"required"`
	PlayerName string  `json:"player_name"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Source     string  `json:"source" binding:"omitempty,oneof=membership manual"`
	Method     Method  `json:"method" binding:"omitempty,oneof=cash bank_transfer e_wallet"`
	DueDate    string  `json:"due_date"` // YYYY-MM-DD, optional
}
