package payment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines all database operations on the payment ledger.
type PaymentRepository interface {
	CreatePayment(p *Payment) error
	// CreatePayments writes the whole batch in one transaction; either every
	// record lands or none do.
	CreatePayments(payments []*Payment) error
	GetPaymentByID(id uint) (*Payment, error)
	GetPaymentsByReservation(reservationID uint) ([]Payment, error)
	GetPaymentsByClub(clubID uint, page, limit int, filters map[string]interface{}) ([]Payment, int64, error)
	GetPaymentsInRange(clubID uint, start, end time.Time) ([]Payment, error)
	UpdatePayment(p *Payment) error
	// HasDailyFeeForDate reports whether the user already holds a
	// pending/completed/record court-usage payment for that club and
	// calendar day, outside the given reservation. Used by the fixed-daily
	// pricing rule.
	HasDailyFeeForDate(clubID, userID uint, date time.Time, excludeReservationID uint) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(p *Payment) error {
	return r.db.Create(p).Error
}

func (r *paymentRepository) CreatePayments(payments []*Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range payments {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *paymentRepository) GetPaymentByID(id uint) (*Payment, error) {
	var p Payment
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) GetPaymentsByReservation(reservationID uint) ([]Payment, error) {
	var payments []Payment
	if err := r.db.Where("reservation_id = ?", reservationID).
		Order("id asc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetPaymentsByClub(clubID uint, page, limit int, filters map[string]interface{}) ([]Payment, int64, error) {
	var payments []Payment
	var totalCount int64

	offset := (page - 1) * limit

	query := r.db.Model(&Payment{}).Where("club_id = ?", clubID)

	for key, value := range filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "reservation_id":
			query = query.Where("reservation_id = ?", value)
		case "start_date":
			query = query.Where("created_at >= ?", value)
		case "end_date":
			query = query.Where("created_at < ?", value)
		}
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, totalCount, nil
}

func (r *paymentRepository) GetPaymentsInRange(clubID uint, start, end time.Time) ([]Payment, error) {
	var payments []Payment
	if err := r.db.Where("club_id = ? AND created_at >= ? AND created_at < ?", clubID, start, end).
		Order("created_at asc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) UpdatePayment(p *Payment) error {
	return r.db.Save(p).Error
}

func (r *paymentRepository) HasDailyFeeForDate(clubID, userID uint, date time.Time, excludeReservationID uint) (bool, error) {
	query := r.db.Model(&Payment{}).
		Where("club_id = ? AND user_id = ? AND source = ?", clubID, userID, SourceCourtUsage).
		Where("status IN ?", []Status{StatusPending, StatusCompleted, StatusRecord}).
		Where("amount > 0").
		Where("metadata->>'date' = ?", date.Format("2006-01-02"))
	if excludeReservationID > 0 {
		query = query.Where("reservation_id IS NULL OR reservation_id <> ?", excludeReservationID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
