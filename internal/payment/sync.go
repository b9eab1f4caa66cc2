package payment

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/pricing"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/reservation"
)

// ErrInconsistentAmounts rejects a synchronization whose computed member
// shares are negative or non-finite. No partial payment set is ever written.
var ErrInconsistentAmounts = errors.New("computed payment amounts are inconsistent")

// ReservationStatusWriter is the slice of the reservation repository the
// synchronizer needs to push the aggregate payment status back.
type ReservationStatusWriter interface {
	UpdatePaymentStatus(id uint, status reservation.PaymentStatus) error
}

// Synchronizer keeps a reservation's payment records consistent with its
// player list and the club's pricing configuration: exactly one record per
// member, the reserver additionally carrying the guest fees.
type Synchronizer struct {
	payments     PaymentRepository
	reservations ReservationStatusWriter
}

func NewSynchronizer(payments PaymentRepository, reservations ReservationStatusWriter) *Synchronizer {
	return &Synchronizer{
		payments:     payments,
		reservations: reservations,
	}
}

// SyncReservation computes the fee quote for the reservation and brings its
// payment records in line with it:
//
//   - each current member without an active record gets one, pending unless
//     the amount is zero (created directly as record, a pre-settled entry)
//   - records that are already completed or record are never touched, so
//     re-running the sync is idempotent
//   - pending records are re-priced if the quote changed
//   - pending records for players no longer on the reservation are failed
//     with a correction reason
//
// If any computed amount is negative or non-finite the whole synchronization
// is rejected before a single record is written.
func (s *Synchronizer) SyncReservation(res *reservation.Reservation, settings *club.Settings) error {
	members := res.Players.Members()

	quote, err := pricing.Evaluate(pricing.Config{
		Model:          settings.PricingModel,
		PeakHourFee:    settings.PeakHourFee,
		OffPeakHourFee: settings.OffPeakHourFee,
		FixedHourlyFee: settings.FixedHourlyFee,
		FixedDailyFee:  settings.FixedDailyFee,
		GuestFee:       settings.GuestFee,
		PeakHours:      settings.PeakHours,
	}, pricing.Booking{
		StartSlot:   res.StartSlot,
		EndSlot:     res.EndSlot,
		MemberCount: len(members),
		GuestCount:  res.Players.GuestCount(),
	})
	if err != nil {
		return err
	}

	reserverIdx := reserverIndex(members, res.CreatedBy)

	// Compute every member's amount up front so an invalid one rejects the
	// whole set before anything is written.
	amounts := make([]float64, len(members))
	for i, member := range members {
		amount := quote.MemberShare

		// Fixed-daily: a member who already paid the daily fee for this club
		// and calendar day owes no base amount on this booking.
		if settings.PricingModel == club.PricingFixedDaily && member.UserID != nil {
			alreadyPaid, err := s.payments.HasDailyFeeForDate(res.ClubID, *member.UserID, res.Date, res.ID)
			if err != nil {
				return fmt.Errorf("daily fee lookup for %q: %w", member.Name, err)
			}
			if alreadyPaid {
				amount = 0
			}
		}

		// Guest fees are owed entirely by the reserving member, not split.
		if i == reserverIdx {
			amount += quote.TotalGuestFee
		}

		amount = pricing.RoundMoney(amount)
		if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return fmt.Errorf("%w: %q would owe %v", ErrInconsistentAmounts, member.Name, amount)
		}
		amounts[i] = amount
	}

	existing, err := s.payments.GetPaymentsByReservation(res.ID)
	if err != nil {
		return fmt.Errorf("loading existing payments: %w", err)
	}

	var toCreate []*Payment
	matched := make(map[uint]bool, len(existing))

	for i, member := range members {
		prior := findPayment(existing, matched, member)
		if prior != nil {
			// Settled records are the ledger; only a still-pending record
			// follows a re-priced quote.
			if prior.Status == StatusPending && prior.Amount != amounts[i] {
				prior.Amount = amounts[i]
				prior.Metadata = s.metadata(res, i == reserverIdx)
				if err := s.payments.UpdatePayment(prior); err != nil {
					return fmt.Errorf("re-pricing payment %d: %w", prior.ID, err)
				}
			}
			continue
		}
		toCreate = append(toCreate, s.newPayment(res, settings, member, amounts[i], i == reserverIdx))
	}

	// A pending record whose player left the reservation no longer backs
	// anything; fail it rather than delete it.
	for i := range existing {
		p := &existing[i]
		if matched[p.ID] || p.Status != StatusPending {
			continue
		}
		p.Status = StatusFailed
		p.CorrectionReason = "player removed from reservation"
		if err := s.payments.UpdatePayment(p); err != nil {
			return fmt.Errorf("failing stale payment %d: %w", p.ID, err)
		}
	}

	if err := s.payments.CreatePayments(toCreate); err != nil {
		return fmt.Errorf("creating payment records: %w", err)
	}

	return s.RefreshStatus(res)
}

// RefreshStatus recomputes the reservation's aggregate payment status from
// its current record set and writes it back.
func (s *Synchronizer) RefreshStatus(res *reservation.Reservation) error {
	status, err := s.RefreshStatusByID(res.ID)
	if err != nil {
		return err
	}
	res.PaymentStatus = status
	return nil
}

// RefreshStatusByID recomputes and persists the aggregate payment status for
// the reservation: paid once every active record is completed or record,
// partial when only some are, unpaid otherwise.
func (s *Synchronizer) RefreshStatusByID(reservationID uint) (reservation.PaymentStatus, error) {
	records, err := s.payments.GetPaymentsByReservation(reservationID)
	if err != nil {
		return "", fmt.Errorf("loading payments for status refresh: %w", err)
	}

	var active, settled int
	for i := range records {
		if !records[i].Active() {
			continue
		}
		active++
		if records[i].Settled() {
			settled++
		}
	}

	status := reservation.PaymentUnpaid
	switch {
	case active > 0 && settled == active:
		status = reservation.PaymentPaid
	case settled > 0:
		status = reservation.PaymentPartial
	}

	if err := s.reservations.UpdatePaymentStatus(reservationID, status); err != nil {
		return "", err
	}
	return status, nil
}

func (s *Synchronizer) newPayment(res *reservation.Reservation, settings *club.Settings, member reservation.Player, amount float64, isReserver bool) *Payment {
	due := res.Date
	p := &Payment{
		ClubID:          res.ClubID,
		UserID:          member.UserID,
		PlayerName:      member.Name,
		ReservationID:   &res.ID,
		Source:          SourceCourtUsage,
		Amount:          amount,
		Currency:        settings.Currency,
		Method:          MethodCash,
		Status:          StatusPending,
		DueDate:         &due,
		ReferenceNumber: uuid.NewString(),
		Metadata:        s.metadata(res, isReserver),
	}
	// A no-charge obligation is pre-settled and goes straight into the
	// ledger.
	if amount == 0 {
		now := time.Now()
		p.Status = StatusRecord
		p.RecordedAt = &now
	}
	return p
}

func (s *Synchronizer) metadata(res *reservation.Reservation, isReserver bool) models.JSONMap {
	return models.JSONMap{
		"date":         res.Date.Format("2006-01-02"),
		"time_slot":    fmt.Sprintf("%02d:00-%02d:00", res.StartSlot, res.EndSlot),
		"player_count": len(res.Players),
		"guest_count":  res.Players.GuestCount(),
		"is_reserver":  isReserver,
	}
}

// reserverIndex finds the member who created the reservation; if the creator
// is not on the member list the first member carries the guest fees.
func reserverIndex(members []reservation.Player, createdBy uint) int {
	for i, m := range members {
		if m.UserID != nil && *m.UserID == createdBy {
			return i
		}
	}
	return 0
}

// findPayment matches a member to an existing active record, preferring the
// linked user ID and falling back to the player name for members without an
// account. Each record backs at most one member.
func findPayment(existing []Payment, matched map[uint]bool, member reservation.Player) *Payment {
	for i := range existing {
		p := &existing[i]
		if matched[p.ID] || !p.Active() {
			continue
		}
		if member.UserID != nil && p.UserID != nil {
			if *p.UserID == *member.UserID {
				matched[p.ID] = true
				return p
			}
			continue
		}
		if p.UserID == nil && member.UserID == nil && p.PlayerName == member.Name {
			matched[p.ID] = true
			return p
		}
	}
	return nil
}
