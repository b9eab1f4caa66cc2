package announcement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
)

type AnnouncementController struct {
	repo AnnouncementRepository
}

func NewAnnouncementController(repo AnnouncementRepository) *AnnouncementController {
	return &AnnouncementController{repo: repo}
}

// CreateAnnouncement godoc
// @Summary Post a club announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param announcement body AnnouncementInput true "Announcement"
// @Success 201 {object} Announcement
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Router /clubs/{club_id}/announcements [post]
// @Security Bearer
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	var input AnnouncementInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	a := &Announcement{
		ClubID:    clubID,
		Title:     input.Title,
		Body:      input.Body,
		Pinned:    input.Pinned,
		CreatedBy: userID,
	}
	if err := c.repo.CreateAnnouncement(a); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, a)
}

// GetClubAnnouncements godoc
// @Summary List club announcements
// @Description Pinned announcements sort first, newest first within each group
// @Tags announcements
// @Produce json
// @Param club_id path int true "Club ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse
// @Router /clubs/{club_id}/announcements [get]
// @Security Bearer
func (c *AnnouncementController) GetClubAnnouncements(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	page, limit := parsePagination(ctx)
	items, total, err := c.repo.GetClubAnnouncements(clubID, limit, (page-1)*limit)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, items, page, limit, total)
}

// UpdateAnnouncement godoc
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Announcement ID"
// @Param announcement body AnnouncementInput true "Announcement"
// @Success 200 {object} Announcement
// @Failure 404 {object} utils.ErrorResponse "Announcement not found"
// @Router /clubs/{club_id}/announcements/{id} [put]
// @Security Bearer
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	a, ok := c.loadAnnouncement(ctx)
	if !ok {
		return
	}

	var input AnnouncementInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	a.Title = input.Title
	a.Body = input.Body
	a.Pinned = input.Pinned
	if err := c.repo.UpdateAnnouncement(a); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, a)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Announcement ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Announcement not found"
// @Router /clubs/{club_id}/announcements/{id} [delete]
// @Security Bearer
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	a, ok := c.loadAnnouncement(ctx)
	if !ok {
		return
	}

	if err := c.repo.DeleteAnnouncement(a.ID); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "announcement deleted", nil)
}

func (c *AnnouncementController) loadAnnouncement(ctx *gin.Context) (*Announcement, bool) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return nil, false
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid announcement id")
		return nil, false
	}

	a, err := c.repo.GetAnnouncementByID(uint(id))
	if err != nil {
		if errors.Is(err, ErrAnnouncementNotFound) {
			utils.NotFoundJSON(ctx, "announcement")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return nil, false
	}
	if a.ClubID != clubID {
		utils.NotFoundJSON(ctx, "announcement")
		return nil, false
	}
	return a, true
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
