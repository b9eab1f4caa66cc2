package tournament

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrEntryNotFound      = errors.New("tournament entry not found")
	ErrDuplicateEntry     = errors.New("player already entered in tournament")
)

type TournamentRepository interface {
	CreateTournament(t *Tournament) error
	GetTournamentByID(id uint) (*Tournament, error)
	GetClubTournaments(clubID uint, limit, offset int) ([]Tournament, int64, error)
	UpdateTournament(t *Tournament) error

	AddEntry(e *Entry) error
	GetEntries(tournamentID uint) ([]Entry, error)
	GetEntryByID(id uint) (*Entry, error)
	UpdateEntry(e *Entry) error
	RemoveEntry(id uint) error
}

type tournamentRepository struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) CreateTournament(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *tournamentRepository) GetTournamentByID(id uint) (*Tournament, error) {
	var t Tournament
	if err := r.db.Preload("Entries").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *tournamentRepository) GetClubTournaments(clubID uint, limit, offset int) ([]Tournament, int64, error) {
	var items []Tournament
	var total int64

	query := r.db.Model(&Tournament{}).Where("club_id = ?", clubID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *tournamentRepository) UpdateTournament(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *tournamentRepository) AddEntry(e *Entry) error {
	var count int64
	err := r.db.Model(&Entry{}).
		Where("tournament_id = ? AND player_name = ?", e.TournamentID, e.PlayerName).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEntry
	}
	return r.db.Create(e).Error
}

func (r *tournamentRepository) GetEntries(tournamentID uint) ([]Entry, error) {
	var entries []Entry
	err := r.db.Where("tournament_id = ?", tournamentID).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *tournamentRepository) GetEntryByID(id uint) (*Entry, error) {
	var e Entry
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *tournamentRepository) UpdateEntry(e *Entry) error {
	return r.db.Save(e).Error
}

func (r *tournamentRepository) RemoveEntry(id uint) error {
	result := r.db.Delete(&Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
