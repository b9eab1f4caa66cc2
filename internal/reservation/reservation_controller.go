package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/notify"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/pricing"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
	pkgvalidator "github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/validator"
)

const dateLayout = "2006-01-02"

// ReservationController handles reservation-related HTTP requests
type ReservationController struct {
	repo      ReservationRepository
	clubs     club.ClubRepository
	syncer    PaymentSyncer
	events    notify.Publisher
	appConfig *config.Config
}

// NewReservationController creates a new reservation controller
func NewReservationController(repo ReservationRepository, clubs club.ClubRepository, syncer PaymentSyncer, events notify.Publisher, appConfig *config.Config) *ReservationController {
	return &ReservationController{
		repo:      repo,
		clubs:     clubs,
		syncer:    syncer,
		events:    events,
		appConfig: appConfig,
	}
}

// CreateReservation godoc
// @Summary Book a court
// @Description Create a reservation, compute its fees from the club's pricing settings and create one payment record per member
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation body ReservationInput true "Reservation details"
// @Success 201 {object} Reservation "Reservation created"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 404 {object} utils.ErrorResponse "Club not found"
// @Failure 409 {object} utils.ErrorResponse "Court already reserved"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /reservations [post]
// @Security Bearer
func (c *ReservationController) CreateReservation(ctx *gin.Context) {
	var input ReservationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid reservation input", pkgvalidator.ParseError(err))
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid date, expected YYYY-MM-DD")
		return
	}

	theClub, err := c.clubs.GetClubByID(input.ClubID)
	if err != nil {
		if errors.Is(err, club.ErrClubNotFound) {
			utils.NotFoundJSON(ctx, "club")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}
	if theClub.Status != club.StatusApproved {
		utils.BadRequestJSON(ctx, "club is not approved for bookings")
		return
	}

	settings := &theClub.Settings
	if input.StartSlot < settings.OpeningHour || input.EndSlot > settings.ClosingHour {
		utils.BadRequestJSON(ctx, "booking is outside the club's operating hours")
		return
	}
	if input.EndSlot <= input.StartSlot {
		utils.BadRequestJSON(ctx, "end slot must be after start slot")
		return
	}

	courtNumber := input.CourtNumber
	if courtNumber == 0 {
		courtNumber = 1
	}
	if courtNumber > theClub.CourtCount {
		utils.BadRequestJSON(ctx, "court number exceeds the club's court count")
		return
	}

	taken, err := c.repo.HasOverlap(input.ClubID, courtNumber, date, input.StartSlot, input.EndSlot, 0)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	if taken {
		utils.ConflictJSON(ctx, ErrSlotTaken.Error())
		return
	}

	players := playersFromInput(input.Players)

	quote, err := pricing.Evaluate(settingsToPricingConfig(settings), pricing.Booking{
		StartSlot:   input.StartSlot,
		EndSlot:     input.EndSlot,
		MemberCount: len(players.Members()),
		GuestCount:  players.GuestCount(),
	})
	if err != nil {
		utils.BadRequestJSON(ctx, err.Error())
		return
	}

	res := &Reservation{
		ClubID:        input.ClubID,
		CourtNumber:   courtNumber,
		Date:          date,
		StartSlot:     input.StartSlot,
		EndSlot:       input.EndSlot,
		Players:       players,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentUnpaid,
		TotalFee:      pricing.RoundMoney(quote.TotalBaseFee + quote.TotalGuestFee),
		CreatedBy:     userID,
	}

	if err := c.repo.CreateReservation(res); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	// Payment records are not created in the same transaction as the
	// reservation. If this fails the reservation exists without its payment
	// set; the resync endpoint is the recovery path.
	if err := c.syncer.SyncReservation(res, settings); err != nil {
		utils.ErrorJSON(ctx, http.StatusUnprocessableEntity, err)
		return
	}

	c.events.Publish(notify.Event{
		Type:   notify.EventPaymentsChanged,
		ClubID: res.ClubID,
	})

	ctx.JSON(http.StatusCreated, res)
}

// GetReservationByID godoc
// @Summary Get reservation by ID
// @Tags reservations
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} Reservation "Reservation details"
// @Failure 400 {object} utils.ErrorResponse "Invalid reservation ID"
// @Failure 404 {object} utils.ErrorResponse "Reservation not found"
// @Router /reservations/{reservation_id} [get]
// @Security Bearer
func (c *ReservationController) GetReservationByID(ctx *gin.Context) {
	res, ok := c.loadReservation(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// GetClubReservations godoc
// @Summary List reservations for a club
// @Tags reservations
// @Produce json
// @Param club_id path int true "Club ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param payment_status query string false "Filter by payment status"
// @Param court_number query int false "Filter by court"
// @Success 200 {object} utils.PaginatedResponse{data=[]Reservation} "Reservations"
// @Failure 400 {object} utils.ErrorResponse "Invalid parameters"
// @Router /clubs/{club_id}/reservations [get]
// @Security Bearer
func (c *ReservationController) GetClubReservations(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filters := make(map[string]interface{})
	if dateStr := ctx.Query("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid date, expected YYYY-MM-DD")
			return
		}
		filters["date"] = date
	}
	if ps := ctx.Query("payment_status"); ps != "" {
		filters["payment_status"] = ps
	}
	if court := ctx.Query("court_number"); court != "" {
		courtNumber, err := strconv.Atoi(court)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid court number")
			return
		}
		filters["court_number"] = courtNumber
	}

	reservations, total, err := c.repo.GetReservationsByClub(uint(clubID), page, limit, filters)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, reservations, page, limit, total)
}

// UpdatePlayers godoc
// @Summary Edit a reservation's player list
// @Description Replace the players, recompute fees and resynchronize payment records
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Param players body UpdatePlayersInput true "New player list"
// @Success 200 {object} Reservation "Updated reservation"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 404 {object} utils.ErrorResponse "Reservation not found"
// @Router /reservations/{reservation_id}/players [put]
// @Security Bearer
func (c *ReservationController) UpdatePlayers(ctx *gin.Context) {
	res, ok := c.loadReservation(ctx)
	if !ok {
		return
	}

	var input UpdatePlayersInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationErrorJSON(ctx, "invalid players input", pkgvalidator.ParseError(err))
		return
	}

	settings, err := c.clubs.GetSettings(res.ClubID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	players := playersFromInput(input.Players)

	quote, err := pricing.Evaluate(settingsToPricingConfig(settings), pricing.Booking{
		StartSlot:   res.StartSlot,
		EndSlot:     res.EndSlot,
		MemberCount: len(players.Members()),
		GuestCount:  players.GuestCount(),
	})
	if err != nil {
		utils.BadRequestJSON(ctx, err.Error())
		return
	}

	res.Players = players
	res.TotalFee = pricing.RoundMoney(quote.TotalBaseFee + quote.TotalGuestFee)

	if err := c.repo.UpdateReservation(res); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	if err := c.syncer.SyncReservation(res, settings); err != nil {
		utils.ErrorJSON(ctx, http.StatusUnprocessableEntity, err)
		return
	}

	c.events.Publish(notify.Event{
		Type:   notify.EventPaymentsChanged,
		ClubID: res.ClubID,
	})

	ctx.JSON(http.StatusOK, res)
}

// ResyncPayments godoc
// @Summary Re-run payment synchronization for a reservation
// @Description Administrative recovery for reservations left with a partial payment set
// @Tags reservations
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} Reservation "Reservation after resync"
// @Failure 404 {object} utils.ErrorResponse "Reservation not found"
// @Failure 422 {object} utils.ErrorResponse "Synchronization rejected"
// @Router /reservations/{reservation_id}/sync-payments [post]
// @Security Bearer
func (c *ReservationController) ResyncPayments(ctx *gin.Context) {
	res, ok := c.loadReservation(ctx)
	if !ok {
		return
	}

	settings, err := c.clubs.GetSettings(res.ClubID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	if err := c.syncer.SyncReservation(res, settings); err != nil {
		utils.ErrorJSON(ctx, http.StatusUnprocessableEntity, err)
		return
	}

	c.events.Publish(notify.Event{
		Type:   notify.EventPaymentsChanged,
		ClubID: res.ClubID,
	})

	refreshed, err := c.repo.GetReservationByID(res.ID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, refreshed)
}

// CancelReservation godoc
// @Summary Cancel a reservation
// @Tags reservations
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} utils.SuccessResponse "Reservation cancelled"
// @Failure 400 {object} utils.ErrorResponse "Invalid reservation ID"
// @Failure 404 {object} utils.ErrorResponse "Reservation not found"
// @Router /reservations/{reservation_id} [delete]
// @Security Bearer
func (c *ReservationController) CancelReservation(ctx *gin.Context) {
	reservationID, err := strconv.ParseUint(ctx.Param("reservation_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid reservation ID")
		return
	}

	if err := c.repo.CancelReservation(uint(reservationID)); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			utils.NotFoundJSON(ctx, "reservation")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "reservation cancelled", nil)
}

func (c *ReservationController) loadReservation(ctx *gin.Context) (*Reservation, bool) {
	reservationID, err := strconv.ParseUint(ctx.Param("reservation_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid reservation ID")
		return nil, false
	}

	res, err := c.repo.GetReservationByID(uint(reservationID))
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			utils.NotFoundJSON(ctx, "reservation")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return nil, false
	}
	return res, true
}

func playersFromInput(inputs []PlayerInput) PlayerList {
	players := make(PlayerList, 0, len(inputs))
	for _, in := range inputs {
		players = append(players, Player{
			Name:     in.Name,
			UserID:   in.UserID,
			IsMember: in.IsMember,
			IsGuest:  in.IsGuest,
		})
	}
	return players
}

func settingsToPricingConfig(s *club.Settings) pricing.Config {
	return pricing.Config{
		Model:          s.PricingModel,
		PeakHourFee:    s.PeakHourFee,
		OffPeakHourFee: s.OffPeakHourFee,
		FixedHourlyFee: s.FixedHourlyFee,
		FixedDailyFee:  s.FixedDailyFee,
		GuestFee:       s.GuestFee,
		PeakHours:      s.PeakHours,
	}
}
