// Package pricing computes court-usage fees from a club's pricing
// configuration and a booking's shape. All functions are pure; persistence
// and payment-record bookkeeping live in the payment package.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// Pricing models. These mirror the club settings values.
const (
	ModelVariable    = "variable"
	ModelFixedHourly = "fixed-hourly"
	ModelFixedDaily  = "fixed-daily"
)

var (
	ErrNoMembers       = errors.New("booking has no members to charge")
	ErrInvalidTimeSpan = errors.New("end slot must be after start slot")
	ErrNegativeFee     = errors.New("fee configuration contains a negative amount")
	ErrInvalidAmount   = errors.New("computed amount is negative or not finite")
)

// Config is the slice of club settings the evaluator reads. It is never
// mutated here.
type Config struct {
	Model          string
	PeakHourFee    float64
	OffPeakHourFee float64
	FixedHourlyFee float64
	FixedDailyFee  float64
	GuestFee       float64
	PeakHours      []int
}

// Booking describes the time span and participant counts of one reservation.
// Slots are integer hours of day; the booked range is [StartSlot, EndSlot).
// Bookings do not span midnight.
type Booking struct {
	StartSlot   int
	EndSlot     int
	MemberCount int
	GuestCount  int
}

// Quote is the evaluator output. All amounts are rounded half-up to cents.
// The guest fee is owed entirely by the reserving member, on top of their
// MemberShare; it is not split across members.
type Quote struct {
	TotalBaseFee  float64 `json:"total_base_fee"`
	TotalGuestFee float64 `json:"total_guest_fee"`
	MemberShare   float64 `json:"member_share"`
}

// Evaluate computes the fee quote for a booking under the given
// configuration. MemberCount of zero is a validation error, never a silent
// default.
func Evaluate(cfg Config, b Booking) (Quote, error) {
	if b.MemberCount <= 0 {
		return Quote{}, ErrNoMembers
	}
	if b.EndSlot <= b.StartSlot {
		return Quote{}, ErrInvalidTimeSpan
	}
	if b.GuestCount < 0 {
		return Quote{}, fmt.Errorf("%w: guest count %d", ErrInvalidAmount, b.GuestCount)
	}
	if cfg.PeakHourFee < 0 || cfg.OffPeakHourFee < 0 || cfg.FixedHourlyFee < 0 ||
		cfg.FixedDailyFee < 0 || cfg.GuestFee < 0 {
		return Quote{}, ErrNegativeFee
	}

	var q Quote
	durationHours := b.EndSlot - b.StartSlot

	switch cfg.Model {
	case ModelFixedDaily:
		// Daily fee is per member for the whole day, independent of hours
		// booked. Guest fee applies once per day, not per hour.
		q.TotalBaseFee = cfg.FixedDailyFee * float64(b.MemberCount)
		q.TotalGuestFee = float64(b.GuestCount) * cfg.GuestFee
		q.MemberShare = cfg.FixedDailyFee

	case ModelFixedHourly:
		q.TotalBaseFee = cfg.FixedHourlyFee * float64(durationHours)
		q.TotalGuestFee = float64(b.GuestCount) * cfg.GuestFee * float64(durationHours)
		q.MemberShare = q.TotalBaseFee / float64(b.MemberCount)

	default: // variable peak/off-peak
		peak := make(map[int]bool, len(cfg.PeakHours))
		for _, h := range cfg.PeakHours {
			peak[h] = true
		}
		for hour := b.StartSlot; hour < b.EndSlot; hour++ {
			if peak[hour] {
				q.TotalBaseFee += cfg.PeakHourFee
			} else {
				q.TotalBaseFee += cfg.OffPeakHourFee
			}
			q.TotalGuestFee += float64(b.GuestCount) * cfg.GuestFee
		}
		q.MemberShare = q.TotalBaseFee / float64(b.MemberCount)
	}

	q.TotalBaseFee = RoundMoney(q.TotalBaseFee)
	q.TotalGuestFee = RoundMoney(q.TotalGuestFee)
	q.MemberShare = RoundMoney(q.MemberShare)

	for _, amount := range []float64{q.TotalBaseFee, q.TotalGuestFee, q.MemberShare} {
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return Quote{}, ErrInvalidAmount
		}
	}

	return q, nil
}

// RoundMoney rounds to 2 decimal places with half-up-to-cents semantics.
func RoundMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
