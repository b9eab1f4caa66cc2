package club

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrClubNotFound   = errors.New("club not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrAlreadyMember  = errors.New("user is already a member of this club")
)

// ClubRepository defines all database operations for club management.
type ClubRepository interface {
	CreateClub(club *Club) error
	GetClubByID(id uint) (*Club, error)
	GetClubByCode(code string) (*Club, error)
	GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error)
	UpdateClub(club *Club) error
	UpdateClubStatus(id uint, status ClubStatus) error

	GetSettings(clubID uint) (*Settings, error)
	UpdateSettings(settings *Settings) error

	AddMember(member *Member) error
	GetMember(clubID, userID uint) (*Member, error)
	GetMembers(clubID uint, page, limit int) ([]Member, int64, error)
	DeactivateMember(clubID, userID uint) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// CreateClub creates the club together with its default settings row so the
// pricing evaluator always has a configuration to read.
func (r *clubRepository) CreateClub(club *Club) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		if club.Settings.ClubID == 0 {
			club.Settings.ClubID = club.ID
			if err := tx.Create(&club.Settings).Error; err != nil {
				return err
			}
		}
		// The club owner is its first admin member.
		owner := &Member{
			ClubID:   club.ID,
			UserID:   club.OwnerID,
			Role:     "admin",
			JoinedAt: time.Now(),
			Active:   true,
		}
		return tx.Create(owner).Error
	})
}

func (r *clubRepository) GetClubByID(id uint) (*Club, error) {
	var club Club
	if err := r.db.Preload("Settings").First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) GetClubByCode(code string) (*Club, error) {
	var club Club
	if err := r.db.Preload("Settings").Where("code = ?", code).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error) {
	var clubs []Club
	var totalCount int64

	offset := (page - 1) * limit
	query := r.db.Model(&Club{})

	for key, value := range filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "name":
			query = query.Where("name ILIKE ?", "%"+value.(string)+"%")
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		}
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Settings").Offset(offset).Limit(limit).Order("name asc").Find(&clubs).Error; err != nil {
		return nil, 0, err
	}

	return clubs, totalCount, nil
}

func (r *clubRepository) UpdateClub(club *Club) error {
	return r.db.Save(club).Error
}

func (r *clubRepository) UpdateClubStatus(id uint, status ClubStatus) error {
	res := r.db.Model(&Club{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClubNotFound
	}
	return nil
}

func (r *clubRepository) GetSettings(clubID uint) (*Settings, error) {
	var settings Settings
	if err := r.db.Where("club_id = ?", clubID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *clubRepository) UpdateSettings(settings *Settings) error {
	return r.db.Save(settings).Error
}

func (r *clubRepository) AddMember(member *Member) error {
	var count int64
	if err := r.db.Model(&Member{}).
		Where("club_id = ? AND user_id = ? AND active = true", member.ClubID, member.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyMember
	}
	return r.db.Create(member).Error
}

func (r *clubRepository) GetMember(clubID, userID uint) (*Member, error) {
	var member Member
	if err := r.db.Preload("User").
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *clubRepository) GetMembers(clubID uint, page, limit int) ([]Member, int64, error) {
	var members []Member
	var totalCount int64

	offset := (page - 1) * limit

	if err := r.db.Model(&Member{}).Where("club_id = ? AND active = true", clubID).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("User").
		Where("club_id = ? AND active = true", clubID).
		Order("joined_at asc").
		Offset(offset).Limit(limit).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, totalCount, nil
}

// DeactivateMember soft-removes a member from the club. The row is kept so
// historical payment records still resolve to a membership.
func (r *clubRepository) DeactivateMember(clubID, userID uint) error {
	res := r.db.Model(&Member{}).
		Where("club_id = ? AND user_id = ? AND active = true", clubID, userID).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
