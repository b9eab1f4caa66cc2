package payment

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/pricing"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/reservation"
)

// fakeLedger implements PaymentRepository in memory.
type fakeLedger struct {
	payments  []*Payment
	nextID    uint
	dailyPaid map[string]bool // "clubID/userID/date" -> already paid elsewhere
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{nextID: 1, dailyPaid: make(map[string]bool)}
}

func (f *fakeLedger) CreatePayment(p *Payment) error {
	p.ID = f.nextID
	f.nextID++
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeLedger) CreatePayments(payments []*Payment) error {
	for _, p := range payments {
		if err := f.CreatePayment(p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLedger) GetPaymentByID(id uint) (*Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (f *fakeLedger) GetPaymentsByReservation(reservationID uint) ([]Payment, error) {
	var out []Payment
	for _, p := range f.payments {
		if p.ReservationID != nil && *p.ReservationID == reservationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeLedger) GetPaymentsByClub(clubID uint, page, limit int, filters map[string]interface{}) ([]Payment, int64, error) {
	var out []Payment
	for _, p := range f.payments {
		if p.ClubID == clubID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLedger) GetPaymentsInRange(clubID uint, start, end time.Time) ([]Payment, error) {
	return nil, nil
}

func (f *fakeLedger) UpdatePayment(p *Payment) error {
	for i, existing := range f.payments {
		if existing.ID == p.ID {
			cp := *p
			f.payments[i] = &cp
			return nil
		}
	}
	return ErrPaymentNotFound
}

func (f *fakeLedger) HasDailyFeeForDate(clubID, userID uint, date time.Time, excludeReservationID uint) (bool, error) {
	if f.dailyPaid[dailyKey(clubID, userID, date)] {
		return true, nil
	}
	for _, p := range f.payments {
		if p.ClubID != clubID || p.UserID == nil || *p.UserID != userID {
			continue
		}
		if p.Source != SourceCourtUsage || p.Amount <= 0 {
			continue
		}
		if p.Status != StatusPending && p.Status != StatusCompleted && p.Status != StatusRecord {
			continue
		}
		if excludeReservationID > 0 && p.ReservationID != nil && *p.ReservationID == excludeReservationID {
			continue
		}
		if p.Metadata["date"] == date.Format("2006-01-02") {
			return true, nil
		}
	}
	return false, nil
}

func dailyKey(clubID, userID uint, date time.Time) string {
	return fmt.Sprintf("%d/%d/%s", clubID, userID, date.Format("2006-01-02"))
}

// fakeReservations records aggregate status updates.
type fakeReservations struct {
	statuses map[uint]reservation.PaymentStatus
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{statuses: make(map[uint]reservation.PaymentStatus)}
}

func (f *fakeReservations) UpdatePaymentStatus(id uint, status reservation.PaymentStatus) error {
	f.statuses[id] = status
	return nil
}

func uintPtr(v uint) *uint { return &v }

func variableSettings() *club.Settings {
	return &club.Settings{
		PricingModel: club.PricingVariable,
		PeakHourFee:  150,
		GuestFee:     70,
		PeakHours:    []int{18, 19, 20, 21},
		Currency:     "PHP",
	}
}

func eveningReservation() *reservation.Reservation {
	res := &reservation.Reservation{
		ClubID:    1,
		Date:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		StartSlot: 18,
		EndSlot:   20,
		Players: reservation.PlayerList{
			{Name: "Roel", UserID: uintPtr(10), IsMember: true},
			{Name: "Mila", UserID: uintPtr(11), IsMember: true},
			{Name: "Visitor", IsGuest: true},
		},
		CreatedBy: 10,
	}
	res.ID = 100
	return res
}

func TestSyncReservationCreatesOneRecordPerMember(t *testing.T) {
	ledger := newFakeLedger()
	reservations := newFakeReservations()
	syncer := NewSynchronizer(ledger, reservations)

	res := eveningReservation()
	if err := syncer.SyncReservation(res, variableSettings()); err != nil {
		t.Fatalf("SyncReservation(): %v", err)
	}

	records, _ := ledger.GetPaymentsByReservation(res.ID)
	if len(records) != 2 {
		t.Fatalf("created %d records, want 2 (one per member, none for the guest)", len(records))
	}

	// 2 peak hours at 150 -> base 300, share 150; guest fee 70 x 2h = 140
	// owed entirely by the reserving member.
	byUser := make(map[uint]Payment)
	for _, p := range records {
		byUser[*p.UserID] = p
	}
	if got := byUser[10].Amount; got != 290 {
		t.Errorf("reserver amount = %v, want 290 (150 share + 140 guest fee)", got)
	}
	if got := byUser[11].Amount; got != 150 {
		t.Errorf("second member amount = %v, want 150", got)
	}
	for _, p := range records {
		if p.Status != StatusPending {
			t.Errorf("record %d status = %s, want pending", p.ID, p.Status)
		}
		if p.ReferenceNumber == "" {
			t.Errorf("record %d has no reference number", p.ID)
		}
		if p.Metadata["date"] != "2026-08-30" {
			t.Errorf("record %d metadata date = %v", p.ID, p.Metadata["date"])
		}
	}

	if reservations.statuses[res.ID] != reservation.PaymentUnpaid {
		t.Errorf("aggregate status = %s, want unpaid", reservations.statuses[res.ID])
	}
}

func TestSyncReservationIsIdempotent(t *testing.T) {
	ledger := newFakeLedger()
	reservations := newFakeReservations()
	syncer := NewSynchronizer(ledger, reservations)

	res := eveningReservation()
	settings := variableSettings()
	if err := syncer.SyncReservation(res, settings); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	// Settle every record into the ledger.
	for _, p := range ledger.payments {
		if err := p.Approve(1, ""); err != nil {
			t.Fatalf("Approve(): %v", err)
		}
		if err := p.RecordPayment(1); err != nil {
			t.Fatalf("RecordPayment(): %v", err)
		}
	}

	amountsBefore := map[uint]float64{}
	for _, p := range ledger.payments {
		amountsBefore[p.ID] = p.Amount
	}

	if err := syncer.SyncReservation(res, settings); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	records, _ := ledger.GetPaymentsByReservation(res.ID)
	if len(records) != 2 {
		t.Fatalf("re-sync created duplicates: %d records, want 2", len(records))
	}
	for _, p := range records {
		if p.Amount != amountsBefore[p.ID] {
			t.Errorf("re-sync changed amount of record %d: %v -> %v", p.ID, amountsBefore[p.ID], p.Amount)
		}
		if p.Status != StatusRecord {
			t.Errorf("re-sync changed status of record %d to %s", p.ID, p.Status)
		}
	}

	if reservations.statuses[res.ID] != reservation.PaymentPaid {
		t.Errorf("aggregate status = %s, want paid", reservations.statuses[res.ID])
	}
}

func TestSyncReservationFixedDailyAlreadyPaid(t *testing.T) {
	ledger := newFakeLedger()
	reservations := newFakeReservations()
	syncer := NewSynchronizer(ledger, reservations)

	settings := &club.Settings{
		PricingModel:  club.PricingFixedDaily,
		FixedDailyFee: 500,
		Currency:      "PHP",
	}

	res := &reservation.Reservation{
		ClubID:    1,
		Date:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		StartSlot: 9,
		EndSlot:   11,
		Players: reservation.PlayerList{
			{Name: "Roel", UserID: uintPtr(10), IsMember: true},
			{Name: "Mila", UserID: uintPtr(11), IsMember: true},
			{Name: "Ben", UserID: uintPtr(12), IsMember: true},
		},
		CreatedBy: 10,
	}
	res.ID = 200

	// Mila already paid her daily fee via an earlier booking today.
	ledger.dailyPaid[dailyKey(1, 11, res.Date)] = true

	if err := syncer.SyncReservation(res, settings); err != nil {
		t.Fatalf("SyncReservation(): %v", err)
	}

	records, _ := ledger.GetPaymentsByReservation(res.ID)
	if len(records) != 3 {
		t.Fatalf("created %d records, want 3", len(records))
	}

	byUser := make(map[uint]Payment)
	for _, p := range records {
		byUser[*p.UserID] = p
	}
	if got := byUser[10].Amount; got != 500 {
		t.Errorf("Roel owes %v, want 500", got)
	}
	if got := byUser[12].Amount; got != 500 {
		t.Errorf("Ben owes %v, want 500", got)
	}
	if got := byUser[11].Amount; got != 0 {
		t.Errorf("Mila owes %v, want 0 (already paid today)", got)
	}
	// The zero-amount obligation is pre-settled and lands directly in the
	// ledger as record.
	if byUser[11].Status != StatusRecord {
		t.Errorf("Mila's record status = %s, want record", byUser[11].Status)
	}
	if byUser[11].RecordedAt == nil {
		t.Error("pre-settled record has no RecordedAt")
	}
	if byUser[10].Status != StatusPending || byUser[12].Status != StatusPending {
		t.Error("charged members should start pending")
	}

	if reservations.statuses[res.ID] != reservation.PaymentPartial {
		t.Errorf("aggregate status = %s, want partial (one pre-settled, two pending)", reservations.statuses[res.ID])
	}
}

func TestSyncReservationRejectsWithoutMembers(t *testing.T) {
	ledger := newFakeLedger()
	syncer := NewSynchronizer(ledger, newFakeReservations())

	res := &reservation.Reservation{
		ClubID:    1,
		Date:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		StartSlot: 9,
		EndSlot:   10,
		Players: reservation.PlayerList{
			{Name: "Visitor", IsGuest: true},
		},
	}
	res.ID = 300

	err := syncer.SyncReservation(res, variableSettings())
	if !errors.Is(err, pricing.ErrNoMembers) {
		t.Fatalf("error = %v, want %v", err, pricing.ErrNoMembers)
	}
	if len(ledger.payments) != 0 {
		t.Errorf("rejected sync still created %d records", len(ledger.payments))
	}
}

func TestSyncReservationFailsStalePendingRecords(t *testing.T) {
	ledger := newFakeLedger()
	reservations := newFakeReservations()
	syncer := NewSynchronizer(ledger, reservations)

	res := eveningReservation()
	settings := variableSettings()
	if err := syncer.SyncReservation(res, settings); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	// Mila drops off the booking.
	res.Players = reservation.PlayerList{
		{Name: "Roel", UserID: uintPtr(10), IsMember: true},
		{Name: "Visitor", IsGuest: true},
	}
	if err := syncer.SyncReservation(res, settings); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	records, _ := ledger.GetPaymentsByReservation(res.ID)
	var milaRecord *Payment
	for i := range records {
		if records[i].UserID != nil && *records[i].UserID == 11 {
			milaRecord = &records[i]
		}
	}
	if milaRecord == nil {
		t.Fatal("Mila's record disappeared; ledger rows must never be deleted")
	}
	if milaRecord.Status != StatusFailed {
		t.Errorf("stale record status = %s, want failed", milaRecord.Status)
	}
	if milaRecord.CorrectionReason == "" {
		t.Error("stale record has no correction reason")
	}

	// Roel now owes the whole base fee plus the guest fees.
	for i := range records {
		if records[i].UserID != nil && *records[i].UserID == 10 {
			if records[i].Amount != 440 {
				t.Errorf("reserver amount = %v, want 440 (300 base + 140 guest fee)", records[i].Amount)
			}
		}
	}
}
