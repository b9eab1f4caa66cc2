package tournament

import (
	"sort"
	"time"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
)

const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Tournament is a club-run event that members enter individually.
type Tournament struct {
	models.BaseModel
	ClubID    uint      `gorm:"not null;index" json:"club_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Status    string    `gorm:"size:20;not null;default:'upcoming'" json:"status"`
	Entries   []Entry   `gorm:"foreignKey:TournamentID" json:"entries,omitempty"`
}

// Entry is one participant's running tally inside a tournament.
type Entry struct {
	models.BaseModel
	TournamentID uint   `gorm:"not null;index" json:"tournament_id"`
	PlayerName   string `gorm:"size:100;not null" json:"player_name"`
	UserID       *uint  `gorm:"index" json:"user_id,omitempty"`
	Points       int    `gorm:"not null;default:0" json:"points"`
	Wins         int    `gorm:"not null;default:0" json:"wins"`
	Losses       int    `gorm:"not null;default:0" json:"losses"`
}

// Standing is a ranked view of one entry. Rank is 1-based; entries with
// equal points and wins share a rank.
type Standing struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	UserID     *uint  `json:"user_id,omitempty"`
	Points     int    `json:"points"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}

// ComputeStandings orders entries by points descending, wins as the
// tiebreak, and assigns shared ranks to exact ties.
func ComputeStandings(entries []Entry) []Standing {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].Wins > sorted[j].Wins
	})

	standings := make([]Standing, 0, len(sorted))
	for i, e := range sorted {
		rank := i + 1
		if i > 0 && e.Points == sorted[i-1].Points && e.Wins == sorted[i-1].Wins {
			rank = standings[i-1].Rank
		}
		standings = append(standings, Standing{
			Rank:       rank,
			PlayerName: e.PlayerName,
			UserID:     e.UserID,
			Points:     e.Points,
			Wins:       e.Wins,
			Losses:     e.Losses,
		})
	}
	return standings
}

type TournamentInput struct {
	Name      string `json:"name" binding:"required,max=200"`
	StartDate string `json:"start_date" binding:"required" example:"2025-07-01"`
	EndDate   string `json:"end_date" binding:"required" example:"2025-07-14"`
}

type EntryInput struct {
	PlayerName string `json:"player_name" binding:"required,max=100"`
	UserID     *uint  `json:"user_id"`
}

type ResultInput struct {
	Points int `json:"points" binding:"min=0"`
	Wins   int `json:"wins" binding:"min=0"`
	Losses int `json:"losses" binding:"min=0"`
}
