package club

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
)

// ClubController handles club-related HTTP requests
type ClubController struct {
	repo      ClubRepository
	appConfig *config.Config
}

// NewClubController creates a new club controller
func NewClubController(repo ClubRepository, appConfig *config.Config) *ClubController {
	return &ClubController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// CreateClub godoc
// @Summary Register a new club
// @Description Create a new club in pending status; a superadmin approves it before it becomes active
// @Tags clubs
// @Accept json
// @Produce json
// @Param club body ClubInput true "Club information"
// @Success 201 {object} Club "Club created successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 409 {object} utils.ErrorResponse "Club name or code already taken"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /clubs [post]
// @Security Bearer
func (c *ClubController) CreateClub(ctx *gin.Context) {
	var input ClubInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	if _, err := c.repo.GetClubByCode(input.Code); err == nil {
		utils.ConflictJSON(ctx, "club code already taken")
		return
	}

	courtCount := input.CourtCount
	if courtCount == 0 {
		courtCount = 1
	}

	club := &Club{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		Status:      StatusPending,
		OwnerID:     userID,
		CourtCount:  courtCount,
		Settings: Settings{
			PricingModel:      PricingVariable,
			Currency:          c.appConfig.Platform.DefaultCurrency,
			ServiceFeePercent: c.appConfig.Platform.DefaultServiceFeePercent,
		},
	}

	if err := c.repo.CreateClub(club); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, club)
}

// GetClubByID godoc
// @Summary Get club by ID
// @Description Get detailed information about a club including its pricing settings
// @Tags clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {object} Club "Club details"
// @Failure 400 {object} utils.ErrorResponse "Invalid club ID"
// @Failure 404 {object} utils.ErrorResponse "Club not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /clubs/{club_id} [get]
func (c *ClubController) GetClubByID(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	club, err := c.repo.GetClubByID(uint(clubID))
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			utils.NotFoundJSON(ctx, "club")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, club)
}

// GetAllClubs godoc
// @Summary List clubs
// @Description Get a paginated list of clubs with optional filters
// @Tags clubs
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Number of items per page (default: 10, max: 100)"
// @Param status query string false "Filter by status (pending/approved/suspended)"
// @Param name query string false "Filter by name (partial match)"
// @Success 200 {object} utils.PaginatedResponse{data=[]Club} "List of clubs"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /clubs [get]
func (c *ClubController) GetAllClubs(ctx *gin.Context) {
	page, limit := parsePagination(ctx)

	filters := make(map[string]interface{})
	if status := ctx.Query("status"); status != "" {
		filters["status"] = status
	}
	if name := ctx.Query("name"); name != "" {
		filters["name"] = name
	}

	clubs, total, err := c.repo.GetAllClubs(page, limit, filters)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, clubs, page, limit, total)
}

// ApproveClub godoc
// @Summary Approve a pending club
// @Description Platform onboarding: transition a club from pending to approved
// @Tags clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {object} utils.SuccessResponse "Club approved"
// @Failure 400 {object} utils.ErrorResponse "Invalid club ID"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Failure 404 {object} utils.ErrorResponse "Club not found"
// @Router /admin/clubs/{club_id}/approve [post]
// @Security Bearer
func (c *ClubController) ApproveClub(ctx *gin.Context) {
	c.setStatus(ctx, StatusApproved, "club approved")
}

// SuspendClub godoc
// @Summary Suspend a club
// @Description Platform administration: suspend an approved club
// @Tags clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {object} utils.SuccessResponse "Club suspended"
// @Failure 400 {object} utils.ErrorResponse "Invalid club ID"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Failure 404 {object} utils.ErrorResponse "Club not found"
// @Router /admin/clubs/{club_id}/suspend [post]
// @Security Bearer
func (c *ClubController) SuspendClub(ctx *gin.Context) {
	c.setStatus(ctx, StatusSuspended, "club suspended")
}

func (c *ClubController) setStatus(ctx *gin.Context, status ClubStatus, message string) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	if err := c.repo.UpdateClubStatus(uint(clubID), status); err != nil {
		if errors.Is(err, ErrClubNotFound) {
			utils.NotFoundJSON(ctx, "club")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, message, nil)
}

// UpdateSettings godoc
// @Summary Update club pricing settings
// @Description Replace the club's pricing configuration (pricing model, fees, peak hours, operating window)
// @Tags clubs
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param settings body SettingsInput true "Pricing settings"
// @Success 200 {object} Settings "Updated settings"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 404 {object} utils.ErrorResponse "Club not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /clubs/{club_id}/settings [put]
// @Security Bearer
func (c *ClubController) UpdateSettings(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	var input SettingsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	if input.ClosingHour <= input.OpeningHour {
		utils.BadRequestJSON(ctx, "closing hour must be after opening hour")
		return
	}

	settings, err := c.repo.GetSettings(uint(clubID))
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			utils.NotFoundJSON(ctx, "club")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	settings.PricingModel = input.PricingModel
	settings.PeakHourFee = input.PeakHourFee
	settings.OffPeakHourFee = input.OffPeakHourFee
	settings.FixedHourlyFee = input.FixedHourlyFee
	settings.FixedDailyFee = input.FixedDailyFee
	settings.GuestFee = input.GuestFee
	settings.PeakHours = input.PeakHours
	settings.OpeningHour = input.OpeningHour
	settings.ClosingHour = input.ClosingHour
	settings.ServiceFeePercent = input.ServiceFeePercent
	if input.Currency != "" {
		settings.Currency = input.Currency
	}

	if err := c.repo.UpdateSettings(settings); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// AddMember godoc
// @Summary Add a member to a club
// @Description Membership administration: attach an existing user to the club
// @Tags clubs
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param member body MemberInput true "Member information"
// @Success 201 {object} Member "Member added"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 409 {object} utils.ErrorResponse "Already a member"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /clubs/{club_id}/members [post]
// @Security Bearer
func (c *ClubController) AddMember(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	var input MemberInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	role := input.Role
	if role == "" {
		role = "member"
	}

	member := &Member{
		ClubID:   uint(clubID),
		UserID:   input.UserID,
		Role:     role,
		JoinedAt: time.Now(),
		Active:   true,
	}

	if err := c.repo.AddMember(member); err != nil {
		if errors.Is(err, ErrAlreadyMember) {
			utils.ConflictJSON(ctx, err.Error())
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// GetMembers godoc
// @Summary List club members
// @Tags clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} utils.PaginatedResponse{data=[]Member} "Members"
// @Failure 400 {object} utils.ErrorResponse "Invalid club ID"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /clubs/{club_id}/members [get]
// @Security Bearer
func (c *ClubController) GetMembers(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	page, limit := parsePagination(ctx)

	members, total, err := c.repo.GetMembers(uint(clubID), page, limit)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, members, page, limit, total)
}

// RemoveMember godoc
// @Summary Remove a member from a club
// @Description Deactivates the membership; historical payment records are preserved
// @Tags clubs
// @Produce json
// @Param club_id path int true "Club ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} utils.SuccessResponse "Member removed"
// @Failure 400 {object} utils.ErrorResponse "Invalid ID"
// @Failure 404 {object} utils.ErrorResponse "Member not found"
// @Router /clubs/{club_id}/members/{user_id} [delete]
// @Security Bearer
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid user ID")
		return
	}

	if err := c.repo.DeactivateMember(uint(clubID), uint(userID)); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			utils.NotFoundJSON(ctx, "member")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "member removed", nil)
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
