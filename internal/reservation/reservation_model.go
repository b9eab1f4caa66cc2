package reservation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
)

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Aggregate payment status of a reservation, derived from its payment records.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Player is one participant on a reservation. Members are charged a share of
// the base fee; guests generate a guest fee owed by the reserving member.
type Player struct {
	Name     string `json:"name"`
	UserID   *uint  `json:"user_id,omitempty"`
	IsMember bool   `json:"is_member"`
	IsGuest  bool   `json:"is_guest"`
}

// PlayerList is the JSONB players column. Older rows stored a bare array of
// name strings; Scan migrates that legacy shape to the tagged struct form
// eagerly at read time, so the rest of the code never branches on format.
type PlayerList []Player

func (p PlayerList) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]Player{})
	}
	return json.Marshal([]Player(p))
}

func (p *PlayerList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("PlayerList: expected []byte, got %T", src)
	}
	return p.UnmarshalJSON(b)
}

func (p *PlayerList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("PlayerList: %w", err)
	}

	players := make([]Player, 0, len(raw))
	for i, elem := range raw {
		var player Player
		if err := json.Unmarshal(elem, &player); err == nil {
			players = append(players, player)
			continue
		}
		// Legacy format: a bare name string. Treated as a member without a
		// linked user account.
		var name string
		if err := json.Unmarshal(elem, &name); err != nil {
			return fmt.Errorf("PlayerList: element %d is neither a player object nor a name string", i)
		}
		players = append(players, Player{Name: name, IsMember: true})
	}

	*p = players
	return nil
}

// Members returns the players that owe a share of the base fee.
func (p PlayerList) Members() []Player {
	var members []Player
	for _, player := range p {
		if player.IsMember && !player.IsGuest {
			members = append(members, player)
		}
	}
	return members
}

// GuestCount returns how many players are guests.
func (p PlayerList) GuestCount() int {
	var n int
	for _, player := range p {
		if player.IsGuest {
			n++
		}
	}
	return n
}

// Reservation is one club/court time-block booking. Slots are integer hours
// of day; the booked range is [StartSlot, EndSlot).
type Reservation struct {
	gorm.Model
	ClubID        uint              `gorm:"index;not null" json:"club_id"`
	CourtNumber   int               `gorm:"default:1" json:"court_number"`
	Date          time.Time         `gorm:"index;not null" json:"date"`
	StartSlot     int               `gorm:"not null" json:"start_slot"`
	EndSlot       int               `gorm:"not null" json:"end_slot"`
	Players       PlayerList        `gorm:"type:jsonb;not null" json:"players"`
	Status        ReservationStatus `gorm:"type:VARCHAR(20);default:'confirmed'" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"type:VARCHAR(20);default:'unpaid'" json:"payment_status"`
	TotalFee      float64           `gorm:"default:0" json:"total_fee"`
	CreatedBy     uint              `gorm:"index;not null" json:"created_by"`
}

// PaymentSyncer creates or updates the payment records backing a reservation
// and refreshes its aggregate payment status. Implemented by the payment
// package; injected here to keep the dependency one-directional.
type PaymentSyncer interface {
	SyncReservation(res *Reservation, settings *club.Settings) error
}

type ReservationInput struct {
	ClubID      uint          `json:"club_id" binding:"required"`
	CourtNumber int           `json:"court_number" binding:"omitempty,min=1"`
	Date        string        `json:"date" binding:"required"` // YYYY-MM-DD
	StartSlot   int           `json:"start_slot" binding:"min=0,max=23"`
	EndSlot     int           `json:"end_slot" binding:"min=1,max=24"`
	Players     []PlayerInput `json:"players" binding:"required,min=1,dive"`
}

type PlayerInput struct {
	Name     string `json:"name" binding:"required"`
	UserID   *uint  `json:"user_id"`
	IsMember bool   `json:"is_member"`
	IsGuest  bool   `json:"is_guest"`
}

type UpdatePlayersInput struct {
	Players []PlayerInput `json:"players" binding:"required,min=1,dive"`
}
