package payment

import (
	"errors"
	"testing"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
)

func newTestPayment(status Status) *Payment {
	userID := uint(7)
	return &Payment{
		ClubID:     1,
		UserID:     &userID,
		PlayerName: "Roel",
		Amount:     150,
		Currency:   "PHP",
		Method:     MethodCash,
		Status:     status,
		Metadata:   models.JSONMap{"date": "2026-08-30"},
	}
}

func TestApprove(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		wantErr error
	}{
		{"pending can be approved", StatusPending, nil},
		{"completed cannot be approved again", StatusCompleted, ErrNotPending},
		{"recorded cannot be approved", StatusRecord, ErrAlreadyRecorded},
		{"failed is terminal", StatusFailed, ErrTerminal},
		{"refunded is terminal", StatusRefunded, ErrTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPayment(tt.status)
			err := p.Approve(42, MethodBankTransfer)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Approve() error = %v, want %v", err, tt.wantErr)
				}
				if p.Status != tt.status {
					t.Errorf("rejected transition mutated status to %s", p.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Approve() unexpected error: %v", err)
			}
			if p.Status != StatusCompleted {
				t.Errorf("status = %s, want completed", p.Status)
			}
			if p.PaidDate == nil {
				t.Error("PaidDate not set")
			}
			if p.ApprovedBy == nil || *p.ApprovedBy != 42 {
				t.Error("ApprovedBy not set to approving admin")
			}
			if p.Method != MethodBankTransfer {
				t.Errorf("method = %s, want bank_transfer", p.Method)
			}
		})
	}
}

func TestRecordPayment(t *testing.T) {
	p := newTestPayment(StatusPending)
	if err := p.RecordPayment(42); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("recording a pending payment: error = %v, want %v", err, ErrNotCompleted)
	}

	if err := p.Approve(42, ""); err != nil {
		t.Fatalf("Approve(): %v", err)
	}
	if err := p.RecordPayment(42); err != nil {
		t.Fatalf("RecordPayment(): %v", err)
	}
	if p.Status != StatusRecord {
		t.Errorf("status = %s, want record", p.Status)
	}
	if p.RecordedAt == nil {
		t.Error("RecordedAt not set")
	}

	// Recording twice is a rejected no-op, not a silent success.
	if err := p.RecordPayment(42); !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("double record: error = %v, want %v", err, ErrAlreadyRecorded)
	}
}

func TestCancelPayment(t *testing.T) {
	p := newTestPayment(StatusCompleted)
	if err := p.CancelPayment(42, false, "duplicate entry"); err != nil {
		t.Fatalf("CancelPayment(): %v", err)
	}
	if p.Status != StatusFailed {
		t.Errorf("status = %s, want failed", p.Status)
	}
	if p.CorrectionReason != "duplicate entry" {
		t.Errorf("CorrectionReason = %q", p.CorrectionReason)
	}

	refunded := newTestPayment(StatusCompleted)
	if err := refunded.CancelPayment(42, true, "member overcharged"); err != nil {
		t.Fatalf("CancelPayment(refund): %v", err)
	}
	if refunded.Status != StatusRefunded {
		t.Errorf("status = %s, want refunded", refunded.Status)
	}

	// Cancelling a refunded payment is a state conflict.
	if err := refunded.CancelPayment(42, false, "again"); !errors.Is(err, ErrTerminal) {
		t.Fatalf("cancel refunded: error = %v, want %v", err, ErrTerminal)
	}
}

// A payment moved pending -> completed -> record and then unrecorded must be
// observably equal to its state right after the original approval, aside
// from audit fields.
func TestUnrecordRoundTrip(t *testing.T) {
	p := newTestPayment(StatusPending)
	if err := p.Approve(42, MethodEWallet); err != nil {
		t.Fatalf("Approve(): %v", err)
	}

	afterApprove := *p

	if err := p.RecordPayment(42); err != nil {
		t.Fatalf("RecordPayment(): %v", err)
	}
	if err := p.Unrecord(99, "recorded against the wrong month"); err != nil {
		t.Fatalf("Unrecord(): %v", err)
	}

	if p.Status != afterApprove.Status {
		t.Errorf("status = %s, want %s", p.Status, afterApprove.Status)
	}
	if p.Amount != afterApprove.Amount {
		t.Errorf("amount changed: %v != %v", p.Amount, afterApprove.Amount)
	}
	if p.Method != afterApprove.Method {
		t.Errorf("method changed: %s != %s", p.Method, afterApprove.Method)
	}
	if p.RecordedAt != nil {
		t.Error("RecordedAt should be cleared by unrecord")
	}
	if p.CorrectionReason == "" {
		t.Error("unrecord must leave an audit reason")
	}
	if got, want := p.Metadata["date"], afterApprove.Metadata["date"]; got != want {
		t.Errorf("metadata changed: %v != %v", got, want)
	}

	// Unrecording a completed payment is a state conflict.
	if err := p.Unrecord(99, "again"); !errors.Is(err, ErrNotRecorded) {
		t.Fatalf("double unrecord: error = %v, want %v", err, ErrNotRecorded)
	}
}

func TestIsStateConflict(t *testing.T) {
	p := newTestPayment(StatusRecord)
	err := p.Approve(1, "")
	if !IsStateConflict(err) {
		t.Errorf("IsStateConflict(%v) = false, want true", err)
	}
	if IsStateConflict(errors.New("database down")) {
		t.Error("IsStateConflict matched an unrelated error")
	}
}
