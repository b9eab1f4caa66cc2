package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/models"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/notify"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
)

// PaymentController handles the admin payment workflow over the ledger.
type PaymentController struct {
	repo      PaymentRepository
	syncer    *Synchronizer
	events    notify.Publisher
	appConfig *config.Config
}

// NewPaymentController creates a new payment controller
func NewPaymentController(repo PaymentRepository, syncer *Synchronizer, events notify.Publisher, appConfig *config.Config) *PaymentController {
	return &PaymentController{
		repo:      repo,
		syncer:    syncer,
		events:    events,
		appConfig: appConfig,
	}
}

// GetClubPayments godoc
// @Summary List payments for a club
// @Tags payments
// @Produce json
// @Param club_id path int true "Club ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param method query string false "Filter by payment method"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} utils.PaginatedResponse{data=[]Payment} "Payments"
// @Failure 400 {object} utils.ErrorResponse "Invalid parameters"
// @Router /clubs/{club_id}/payments [get]
// @Security Bearer
func (c *PaymentController) GetClubPayments(ctx *gin.Context) {
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
	if status := ctx.Query("status"); status != "" {
		filters["status"] = status
	}
	if method := ctx.Query("method"); method != "" {
		filters["method"] = method
	}
	if userIDStr := ctx.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid user_id")
			return
		}
		filters["user_id"] = uint(userID)
	}

	payments, total, err := c.repo.GetPaymentsByClub(uint(clubID), page, limit, filters)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, payments, page, limit, total)
}

// GetPaymentByID godoc
// @Summary Get payment by ID
// @Tags payments
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} Payment "Payment details"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Router /payments/{payment_id} [get]
// @Security Bearer
func (c *PaymentController) GetPaymentByID(ctx *gin.Context) {
	p, ok := c.loadPayment(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// ApprovePayment godoc
// @Summary Approve a pending payment
// @Description Admin confirms the member has paid; moves pending to completed
// @Tags payments
// @Accept json
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Param transition body TransitionInput false "Payment method actually used"
// @Success 200 {object} Payment "Payment after transition"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Failure 409 {object} utils.ErrorResponse "Invalid status transition"
// @Router /payments/{payment_id}/approve [post]
// @Security Bearer
func (c *PaymentController) ApprovePayment(ctx *gin.Context) {
	c.transition(ctx, func(p *Payment, adminID uint, input TransitionInput) error {
		return p.Approve(adminID, input.Method)
	})
}

// RecordPayment godoc
// @Summary Record a completed payment into the ledger
// @Tags payments
// @Accept json
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} Payment "Payment after transition"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Failure 409 {object} utils.ErrorResponse "Invalid status transition"
// @Router /payments/{payment_id}/record [post]
// @Security Bearer
func (c *PaymentController) RecordPayment(ctx *gin.Context) {
	c.transition(ctx, func(p *Payment, adminID uint, input TransitionInput) error {
		return p.RecordPayment(adminID)
	})
}

// CancelPayment godoc
// @Summary Cancel a completed payment
// @Description Moves a completed payment to failed, or refunded when the money was returned
// @Tags payments
// @Accept json
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Param transition body TransitionInput false "Refund flag and reason"
// @Success 200 {object} Payment "Payment after transition"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Failure 409 {object} utils.ErrorResponse "Invalid status transition"
// @Router /payments/{payment_id}/cancel [post]
// @Security Bearer
func (c *PaymentController) CancelPayment(ctx *gin.Context) {
	c.transition(ctx, func(p *Payment, adminID uint, input TransitionInput) error {
		return p.CancelPayment(adminID, input.Refund, input.Reason)
	})
}

// UnrecordPayment godoc
// @Summary Reverse an erroneous record back to completed
// @Tags payments
// @Accept json
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Param transition body TransitionInput false "Correction reason"
// @Success 200 {object} Payment "Payment after transition"
// @Failure 404 {object} utils.ErrorResponse "Payment not found"
// @Failure 409 {object} utils.ErrorResponse "Invalid status transition"
// @Router /payments/{payment_id}/unrecord [post]
// @Security Bearer
func (c *PaymentController) UnrecordPayment(ctx *gin.Context) {
	c.transition(ctx, func(p *Payment, adminID uint, input TransitionInput) error {
		return p.Unrecord(adminID, input.Reason)
	})
}

// CreateManualCharge godoc
// @Summary Create a membership or manual administrative charge
// @Tags payments
// @Accept json
// @Produce json
// @Param charge body ManualChargeInput true "Charge details"
// @Success 201 {object} Payment "Charge created"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Router /payments [post]
// @Security Bearer
func (c *PaymentController) CreateManualCharge(ctx *gin.Context) {
	var input ManualChargeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	source := input.Source
	if source == "" {
		source = SourceManual
	}
	method := input.Method
	if method == "" {
		method = MethodCash
	}

	var due *time.Time
	if input.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid due_date, expected YYYY-MM-DD")
			return
		}
		due = &parsed
	}

	userID := input.UserID
	p := &Payment{
		ClubID:          input.ClubID,
		UserID:          &userID,
		PlayerName:      input.PlayerName,
		Source:          source,
		Amount:          input.Amount,
		Currency:        c.appConfig.Platform.DefaultCurrency,
		Method:          method,
		Status:          StatusPending,
		DueDate:         due,
		ReferenceNumber: uuid.NewString(),
		Metadata:        models.JSONMap{},
	}

	if err := c.repo.CreatePayment(p); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	c.events.Publish(notify.Event{Type: notify.EventPaymentsChanged, ClubID: p.ClubID})
	ctx.JSON(http.StatusCreated, p)
}

func (c *PaymentController) transition(ctx *gin.Context, apply func(*Payment, uint, TransitionInput) error) {
	p, ok := c.loadPayment(ctx)
	if !ok {
		return
	}

	adminID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	var input TransitionInput
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			utils.ErrorJSON(ctx, http.StatusBadRequest, err)
			return
		}
	}

	if err := apply(p, adminID, input); err != nil {
		if IsStateConflict(err) {
			utils.ConflictJSON(ctx, err.Error())
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	if err := c.repo.UpdatePayment(p); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	// A transition can flip the reservation's aggregate status.
	if p.ReservationID != nil {
		if _, err := c.syncer.RefreshStatusByID(*p.ReservationID); err != nil {
			utils.InternalErrorJSON(ctx, err)
			return
		}
	}

	c.events.Publish(notify.Event{Type: notify.EventPaymentsChanged, ClubID: p.ClubID})
	ctx.JSON(http.StatusOK, p)
}

func (c *PaymentController) loadPayment(ctx *gin.Context) (*Payment, bool) {
	paymentID, err := strconv.ParseUint(ctx.Param("payment_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid payment ID")
		return nil, false
	}

	p, err := c.repo.GetPaymentByID(uint(paymentID))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			utils.NotFoundJSON(ctx, "payment")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return nil, false
	}
	return p, true
}
