// Package report builds the admin-facing payment reconciliation summary.
// Builders are pure and recompute from the current record set on every call;
// there is no caching to invalidate.
package report

import (
	"time"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/payment"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/pricing"
)

// MethodBreakdown is the per-payment-method slice of the settled total.
type MethodBreakdown struct {
	Method payment.Method `json:"method"`
	Count  int            `json:"count"`
	Amount float64        `json:"amount"`
}

// Summary aggregates a club's payment records over a date range. TotalAmount
// counts only settled records (completed and record); the service fee /
// court revenue split is taken from the club's configured percentage.
type Summary struct {
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	TotalPayments     int               `json:"total_payments"`
	TotalAmount       float64           `json:"total_amount"`
	PendingPayments   int               `json:"pending_payments"`
	CompletedPayments int               `json:"completed_payments"`
	RecordedPayments  int               `json:"recorded_payments"`
	ServiceFeePercent float64           `json:"service_fee_percent"`
	ServiceFee        float64           `json:"service_fee"`
	CourtRevenue      float64           `json:"court_revenue"`
	ByMethod          []MethodBreakdown `json:"by_method"`
}

// Build aggregates the given records into a Summary. Records outside
// [start, end) or belonging to failed/refunded statuses do not contribute to
// the settled totals; failed/refunded records are excluded entirely.
func Build(records []payment.Payment, serviceFeePercent float64, start, end time.Time) Summary {
	s := Summary{
		StartDate:         start.Format("2006-01-02"),
		EndDate:           end.Format("2006-01-02"),
		ServiceFeePercent: serviceFeePercent,
	}

	methodTotals := make(map[payment.Method]*MethodBreakdown)

	for i := range records {
		p := &records[i]
		if p.CreatedAt.Before(start) || !p.CreatedAt.Before(end) {
			continue
		}

		switch p.Status {
		case payment.StatusPending:
			s.PendingPayments++
			continue
		case payment.StatusCompleted:
			s.CompletedPayments++
		case payment.StatusRecord:
			s.RecordedPayments++
		default:
			// failed/refunded: audit rows only
			continue
		}

		s.TotalPayments++
		s.TotalAmount += p.Amount

		mb, ok := methodTotals[p.Method]
		if !ok {
			mb = &MethodBreakdown{Method: p.Method}
			methodTotals[p.Method] = mb
		}
		mb.Count++
		mb.Amount += p.Amount
	}

	s.TotalAmount = pricing.RoundMoney(s.TotalAmount)
	s.ServiceFee = pricing.RoundMoney(s.TotalAmount * serviceFeePercent / 100)
	s.CourtRevenue = pricing.RoundMoney(s.TotalAmount - s.ServiceFee)

	// Stable order for the JSON consumer.
	for _, method := range []payment.Method{payment.MethodCash, payment.MethodBankTransfer, payment.MethodEWallet} {
		if mb, ok := methodTotals[method]; ok {
			mb.Amount = pricing.RoundMoney(mb.Amount)
			s.ByMethod = append(s.ByMethod, *mb)
		}
	}

	return s
}
