package reservation

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotTaken           = errors.New("court is already reserved for part of this time span")
)

// ReservationRepository defines all database operations for reservations.
type ReservationRepository interface {
	CreateReservation(res *Reservation) error
	GetReservationByID(id uint) (*Reservation, error)
	GetReservationsByClub(clubID uint, page, limit int, filters map[string]interface{}) ([]Reservation, int64, error)
	UpdateReservation(res *Reservation) error
	UpdatePaymentStatus(id uint, status PaymentStatus) error
	CancelReservation(id uint) error
	HasOverlap(clubID uint, courtNumber int, date time.Time, startSlot, endSlot int, excludeID uint) (bool, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) CreateReservation(res *Reservation) error {
	return r.db.Create(res).Error
}

func (r *reservationRepository) GetReservationByID(id uint) (*Reservation, error) {
	var res Reservation
	if err := r.db.First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) GetReservationsByClub(clubID uint, page, limit int, filters map[string]interface{}) ([]Reservation, int64, error) {
	var reservations []Reservation
	var totalCount int64

	offset := (page - 1) * limit

	query := r.db.Model(&Reservation{}).Where("club_id = ?", clubID)

	for key, value := range filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "date":
			date, ok := value.(time.Time)
			if ok {
				startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
				endOfDay := startOfDay.Add(24 * time.Hour)
				query = query.Where("date >= ? AND date < ?", startOfDay, endOfDay)
			}
		case "court_number":
			query = query.Where("court_number = ?", value)
		case "created_by":
			query = query.Where("created_by = ?", value)
		}
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("date desc, start_slot desc").
		Offset(offset).Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservation(res *Reservation) error {
	return r.db.Save(res).Error
}

func (r *reservationRepository) UpdatePaymentStatus(id uint, status PaymentStatus) error {
	res := r.db.Model(&Reservation{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// CancelReservation marks the reservation cancelled. Payment records are not
// touched here; administrative cancel/refund of payments is a separate action
// on the payment ledger.
func (r *reservationRepository) CancelReservation(id uint) error {
	res := r.db.Model(&Reservation{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Update("status", StatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// HasOverlap reports whether another confirmed reservation occupies any part
// of [startSlot, endSlot) on the same club, court and date.
func (r *reservationRepository) HasOverlap(clubID uint, courtNumber int, date time.Time, startSlot, endSlot int, excludeID uint) (bool, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var count int64
	query := r.db.Model(&Reservation{}).
		Where("club_id = ? AND court_number = ? AND status = ?", clubID, courtNumber, StatusConfirmed).
		Where("date >= ? AND date < ?", startOfDay, endOfDay).
		Where("start_slot < ? AND end_slot > ?", endSlot, startSlot)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
