package announcement

import (
	"errors"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	CreateAnnouncement(a *Announcement) error
	GetAnnouncementByID(id uint) (*Announcement, error)
	GetClubAnnouncements(clubID uint, limit, offset int) ([]Announcement, int64, error)
	UpdateAnnouncement(a *Announcement) error
	DeleteAnnouncement(id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) CreateAnnouncement(a *Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) GetAnnouncementByID(id uint) (*Announcement, error) {
	var a Announcement
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetClubAnnouncements lists pinned announcements first, newest first within
// each group.
func (r *announcementRepository) GetClubAnnouncements(clubID uint, limit, offset int) ([]Announcement, int64, error) {
	var items []Announcement
	var total int64

	query := r.db.Model(&Announcement{}).Where("club_id = ?", clubID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *announcementRepository) UpdateAnnouncement(a *Announcement) error {
	return r.db.Save(a).Error
}

func (r *announcementRepository) DeleteAnnouncement(id uint) error {
	result := r.db.Delete(&Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
