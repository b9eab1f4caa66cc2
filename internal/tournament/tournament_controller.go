package tournament

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
)

const dateLayout = "2006-01-02"

type TournamentController struct {
	repo TournamentRepository
}

func NewTournamentController(repo TournamentRepository) *TournamentController {
	return &TournamentController{repo: repo}
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param tournament body TournamentInput true "Tournament details"
// @Success 201 {object} Tournament
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Router /clubs/{club_id}/tournaments [post]
// @Security Bearer
func (c *TournamentController) CreateTournament(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	var input TournamentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		utils.BadRequestJSON(ctx, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		utils.BadRequestJSON(ctx, "end_date must be YYYY-MM-DD")
		return
	}
	if !end.After(start) {
		utils.BadRequestJSON(ctx, "end_date must be after start_date")
		return
	}

	t := &Tournament{
		ClubID:    clubID,
		Name:      input.Name,
		StartDate: start,
		EndDate:   end,
		Status:    StatusUpcoming,
	}
	if err := c.repo.CreateTournament(t); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, t)
}

// GetClubTournaments godoc
// @Summary List a club's tournaments
// @Tags tournaments
// @Produce json
// @Param club_id path int true "Club ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse
// @Router /clubs/{club_id}/tournaments [get]
// @Security Bearer
func (c *TournamentController) GetClubTournaments(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	page, limit := parsePagination(ctx)
	items, total, err := c.repo.GetClubTournaments(clubID, limit, (page-1)*limit)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, items, page, limit, total)
}

// GetTournamentByID godoc
// @Summary Get a tournament with its entries
// @Tags tournaments
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Tournament ID"
// @Success 200 {object} Tournament
// @Failure 404 {object} utils.ErrorResponse "Tournament not found"
// @Router /clubs/{club_id}/tournaments/{id} [get]
// @Security Bearer
func (c *TournamentController) GetTournamentByID(ctx *gin.Context) {
	t, ok := c.loadTournament(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, t)
}

// UpdateStatus godoc
// @Summary Update a tournament's status
// @Tags tournaments
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Tournament ID"
// @Param status body object{status=string} true "New status (upcoming, ongoing, completed)"
// @Success 200 {object} Tournament
// @Failure 400 {object} utils.ErrorResponse "Unknown status"
// @Router /clubs/{club_id}/tournaments/{id}/status [put]
// @Security Bearer
func (c *TournamentController) UpdateStatus(ctx *gin.Context) {
	t, ok := c.loadTournament(ctx)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	switch input.Status {
	case StatusUpcoming, StatusOngoing, StatusCompleted:
	default:
		utils.BadRequestJSON(ctx, "unknown status")
		return
	}

	t.Status = input.Status
	if err := c.repo.UpdateTournament(t); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, t)
}

// AddEntry godoc
// @Summary Enter a player into a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Tournament ID"
// @Param entry body EntryInput true "Entry"
// @Success 201 {object} Entry
// @Failure 409 {object} utils.ErrorResponse "Player already entered"
// @Router /clubs/{club_id}/tournaments/{id}/entries [post]
// @Security Bearer
func (c *TournamentController) AddEntry(ctx *gin.Context) {
	t, ok := c.loadTournament(ctx)
	if !ok {
		return
	}

	var input EntryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	e := &Entry{
		TournamentID: t.ID,
		PlayerName:   input.PlayerName,
		UserID:       input.UserID,
	}
	if err := c.repo.AddEntry(e); err != nil {
		if errors.Is(err, ErrDuplicateEntry) {
			utils.ConflictJSON(ctx, err.Error())
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, e)
}

// RecordResult godoc
// @Summary Update an entry's running tally
// @Tags tournaments
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Tournament ID"
// @Param entry_id path int true "Entry ID"
// @Param result body ResultInput true "Points, wins and losses"
// @Success 200 {object} Entry
// @Failure 404 {object} utils.ErrorResponse "Entry not found"
// @Router /clubs/{club_id}/tournaments/{id}/entries/{entry_id} [put]
// @Security Bearer
func (c *TournamentController) RecordResult(ctx *gin.Context) {
	t, ok := c.loadTournament(ctx)
	if !ok {
		return
	}

	entryID, err := strconv.ParseUint(ctx.Param("entry_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid entry id")
		return
	}

	e, err := c.repo.GetEntryByID(uint(entryID))
	if err != nil || e.TournamentID != t.ID {
		utils.NotFoundJSON(ctx, "entry")
		return
	}

	var input ResultInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	e.Points = input.Points
	e.Wins = input.Wins
	e.Losses = input.Losses
	if err := c.repo.UpdateEntry(e); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, e)
}

// RemoveEntry godoc
// @Summary Withdraw a player from a tournament
// @Tags tournaments
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Tournament ID"
// @Param entry_id path int true "Entry ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Entry not found"
// @Router /clubs/{club_id}/tournaments/{id}/entries/{entry_id} [delete]
// @Security Bearer
func (c *TournamentController) RemoveEntry(ctx *gin.Context) {
	t, ok := c.loadTournament(ctx)
	if !ok {
		return
	}

	entryID, err := strconv.ParseUint(ctx.Param("entry_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid entry id")
		return
	}

	e, err := c.repo.GetEntryByID(uint(entryID))
	if err != nil || e.TournamentID != t.ID {
		utils.NotFoundJSON(ctx, "entry")
		return
	}

	if err := c.repo.RemoveEntry(e.ID); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "entry removed", nil)
}

// GetStandings godoc
// @Summary Tournament standings
// @Description Ranked by points descending with wins as the tiebreak
// @Tags tournaments
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Tournament ID"
// @Success 200 {array} Standing
// @Failure 404 {object} utils.ErrorResponse "Tournament not found"
// @Router /clubs/{club_id}/tournaments/{id}/standings [get]
// @Security Bearer
func (c *TournamentController) GetStandings(ctx *gin.Context) {
	t, ok := c.loadTournament(ctx)
	if !ok {
		return
	}

	entries, err := c.repo.GetEntries(t.ID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ComputeStandings(entries))
}

func (c *TournamentController) loadTournament(ctx *gin.Context) (*Tournament, bool) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return nil, false
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid tournament id")
		return nil, false
	}

	t, err := c.repo.GetTournamentByID(uint(id))
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			utils.NotFoundJSON(ctx, "tournament")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return nil, false
	}
	if t.ClubID != clubID {
		utils.NotFoundJSON(ctx, "tournament")
		return nil, false
	}
	return t, true
}

func parseClubID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	return uint(id), err
}

func parsePagination(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
