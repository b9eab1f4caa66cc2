package payment

import (
	"errors"
	"fmt"
	"time"
)

// State-conflict errors. Transitions are monotonic forward except for the
// explicit administrative reversals; a rejected transition leaves the record
// untouched.
var (
	ErrNotPending      = errors.New("payment is not pending")
	ErrNotCompleted    = errors.New("payment is not completed")
	ErrNotRecorded     = errors.New("payment is not recorded")
	ErrAlreadyRecorded = errors.New("payment is already recorded")
	ErrTerminal        = errors.New("payment is in a terminal state")
)

// Approve moves a pending payment to completed. The admin workflow: a member
// settles their obligation and the club admin approves it with the method
// actually used.
func (p *Payment) Approve(adminID uint, method Method) error {
	switch p.Status {
	case StatusPending:
	case StatusRecord:
		return fmt.Errorf("%w: cannot approve", ErrAlreadyRecorded)
	case StatusFailed, StatusRefunded:
		return fmt.Errorf("%w: cannot approve", ErrTerminal)
	default:
		return fmt.Errorf("%w: cannot approve a %s payment", ErrNotPending, p.Status)
	}

	now := time.Now()
	p.Status = StatusCompleted
	p.PaidDate = &now
	p.ApprovedBy = &adminID
	if method != "" {
		p.Method = method
	}
	return nil
}

// RecordPayment moves a completed payment to record, closing it into the
// financial ledger. Recording an already-recorded payment is a rejected
// no-op, not a silent success.
func (p *Payment) RecordPayment(adminID uint) error {
	switch p.Status {
	case StatusCompleted:
	case StatusRecord:
		return ErrAlreadyRecorded
	case StatusFailed, StatusRefunded:
		return fmt.Errorf("%w: cannot record", ErrTerminal)
	default:
		return fmt.Errorf("%w: cannot record a %s payment", ErrNotCompleted, p.Status)
	}

	now := time.Now()
	p.Status = StatusRecord
	p.RecordedAt = &now
	p.ApprovedBy = &adminID
	return nil
}

// CancelPayment moves a completed payment to failed, or to refunded when the
// amount was returned to the member.
func (p *Payment) CancelPayment(adminID uint, refund bool, reason string) error {
	switch p.Status {
	case StatusCompleted:
	case StatusFailed, StatusRefunded:
		return fmt.Errorf("%w: cannot cancel", ErrTerminal)
	default:
		return fmt.Errorf("%w: cannot cancel a %s payment", ErrNotCompleted, p.Status)
	}

	if refund {
		p.Status = StatusRefunded
	} else {
		p.Status = StatusFailed
	}
	p.ApprovedBy = &adminID
	p.CorrectionReason = reason
	return nil
}

// Unrecord reverses an erroneous record back to completed. Amount and
// metadata are untouched; only the audit fields change, so the record is
// observably equal to its state right after the original approval.
func (p *Payment) Unrecord(adminID uint, reason string) error {
	if p.Status != StatusRecord {
		return fmt.Errorf("%w: cannot unrecord a %s payment", ErrNotRecorded, p.Status)
	}

	p.Status = StatusCompleted
	p.RecordedAt = nil
	p.ApprovedBy = &adminID
	p.CorrectionReason = reason
	return nil
}

// IsStateConflict reports whether err is one of the state machine's rejected
// transition errors, so handlers can map it to 409 instead of 500.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrNotPending) ||
		errors.Is(err, ErrNotCompleted) ||
		errors.Is(err, ErrNotRecorded) ||
		errors.Is(err, ErrAlreadyRecorded) ||
		errors.Is(err, ErrTerminal)
}
