package report

import (
	"math"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/payment"
)

func paymentAt(created time.Time, status payment.Status, method payment.Method, amount float64) payment.Payment {
	return payment.Payment{
		Model:  gorm.Model{CreatedAt: created},
		ClubID: 1,
		Amount: amount,
		Method: method,
		Status: status,
	}
}

func TestBuildCountsOnlySettledStatuses(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	mid := start.AddDate(0, 0, 10)

	records := []payment.Payment{
		paymentAt(mid, payment.StatusCompleted, payment.MethodCash, 100),
		paymentAt(mid, payment.StatusPending, payment.MethodCash, 50),
		paymentAt(mid, payment.StatusRecord, payment.MethodBankTransfer, 200),
	}

	s := Build(records, 20, start, end)

	if s.TotalPayments != 2 {
		t.Errorf("TotalPayments = %d, want 2 (completed+record only)", s.TotalPayments)
	}
	if s.TotalAmount != 300 {
		t.Errorf("TotalAmount = %v, want 300", s.TotalAmount)
	}
	if s.PendingPayments != 1 {
		t.Errorf("PendingPayments = %d, want 1", s.PendingPayments)
	}
	if s.CompletedPayments != 1 || s.RecordedPayments != 1 {
		t.Errorf("completed/recorded = %d/%d, want 1/1", s.CompletedPayments, s.RecordedPayments)
	}
	if s.ServiceFee != 60 {
		t.Errorf("ServiceFee = %v, want 60 (20%% of 300)", s.ServiceFee)
	}
	if s.CourtRevenue != 240 {
		t.Errorf("CourtRevenue = %v, want 240", s.CourtRevenue)
	}
}

func TestBuildExcludesFailedAndRefunded(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	mid := start.AddDate(0, 0, 5)

	records := []payment.Payment{
		paymentAt(mid, payment.StatusCompleted, payment.MethodCash, 100),
		paymentAt(mid, payment.StatusFailed, payment.MethodCash, 999),
		paymentAt(mid, payment.StatusRefunded, payment.MethodEWallet, 500),
	}

	s := Build(records, 20, start, end)

	if s.TotalPayments != 1 || s.TotalAmount != 100 {
		t.Errorf("settled = %d/%v, want 1/100; failed and refunded must not count", s.TotalPayments, s.TotalAmount)
	}
}

func TestBuildRespectsDateBounds(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	records := []payment.Payment{
		paymentAt(start.Add(-time.Hour), payment.StatusCompleted, payment.MethodCash, 100), // before range
		paymentAt(start, payment.StatusCompleted, payment.MethodCash, 100),                 // first instant
		paymentAt(end.Add(-time.Minute), payment.StatusRecord, payment.MethodCash, 100),    // last day
		paymentAt(end, payment.StatusCompleted, payment.MethodCash, 100),                   // past range
	}

	s := Build(records, 20, start, end)

	if s.TotalPayments != 2 || s.TotalAmount != 200 {
		t.Errorf("settled = %d/%v, want 2/200 within [start, end)", s.TotalPayments, s.TotalAmount)
	}
}

func TestBuildMethodBreakdown(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	mid := start.AddDate(0, 0, 15)

	records := []payment.Payment{
		paymentAt(mid, payment.StatusCompleted, payment.MethodCash, 100),
		paymentAt(mid, payment.StatusRecord, payment.MethodCash, 150),
		paymentAt(mid, payment.StatusRecord, payment.MethodBankTransfer, 300),
		paymentAt(mid, payment.StatusCompleted, payment.MethodEWallet, 50),
		paymentAt(mid, payment.StatusPending, payment.MethodEWallet, 999),
	}

	s := Build(records, 10, start, end)

	want := map[payment.Method]MethodBreakdown{
		payment.MethodCash:         {Method: payment.MethodCash, Count: 2, Amount: 250},
		payment.MethodBankTransfer: {Method: payment.MethodBankTransfer, Count: 1, Amount: 300},
		payment.MethodEWallet:      {Method: payment.MethodEWallet, Count: 1, Amount: 50},
	}

	if len(s.ByMethod) != len(want) {
		t.Fatalf("ByMethod has %d entries, want %d", len(s.ByMethod), len(want))
	}
	for _, mb := range s.ByMethod {
		w := want[mb.Method]
		if mb.Count != w.Count || mb.Amount != w.Amount {
			t.Errorf("method %s: got %d/%v, want %d/%v", mb.Method, mb.Count, mb.Amount, w.Count, w.Amount)
		}
	}

	// The split is computed on the settled total only.
	if s.ServiceFee != 60 {
		t.Errorf("ServiceFee = %v, want 60 (10%% of 600)", s.ServiceFee)
	}
	if math.Abs(s.ServiceFee+s.CourtRevenue-s.TotalAmount) > 0.005 {
		t.Errorf("fee split does not sum back to total: %v + %v != %v", s.ServiceFee, s.CourtRevenue, s.TotalAmount)
	}
}

func TestBuildEmptyRange(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := Build(nil, 20, start, start.AddDate(0, 1, 0))
	if s.TotalPayments != 0 || s.TotalAmount != 0 || len(s.ByMethod) != 0 {
		t.Errorf("empty input produced non-empty summary: %+v", s)
	}
}
