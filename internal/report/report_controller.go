package report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/club"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/payment"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
)

const dateLayout = "2006-01-02"

// ReportController serves read-only reconciliation summaries.
type ReportController struct {
	payments  payment.PaymentRepository
	clubs     club.ClubRepository
	appConfig *config.Config
}

func NewReportController(payments payment.PaymentRepository, clubs club.ClubRepository, appConfig *config.Config) *ReportController {
	return &ReportController{
		payments:  payments,
		clubs:     clubs,
		appConfig: appConfig,
	}
}

// GetReconciliation godoc
// @Summary Payment reconciliation report
// @Description Aggregate a club's payment records over a date range: settled totals, status counts, service-fee split and per-method breakdown
// @Tags reports
// @Produce json
// @Param club_id path int true "Club ID"
// @Param start_date query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param end_date query string true "Range end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} Summary "Reconciliation summary"
// @Failure 400 {object} utils.ErrorResponse "Invalid parameters"
// @Failure 404 {object} utils.ErrorResponse "Club not found"
// @Router /clubs/{club_id}/reports/reconciliation [get]
// @Security Bearer
func (c *ReportController) GetReconciliation(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("club_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club ID")
		return
	}

	start, err := time.Parse(dateLayout, ctx.Query("start_date"))
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, ctx.Query("end_date"))
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid end_date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		utils.BadRequestJSON(ctx, "end_date must not be before start_date")
		return
	}
	// end_date is inclusive for the caller.
	end = end.Add(24 * time.Hour)

	settings, err := c.clubs.GetSettings(uint(clubID))
	if err != nil {
		if errors.Is(err, club.ErrClubNotFound) {
			utils.NotFoundJSON(ctx, "club")
		} else {
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	serviceFeePercent := settings.ServiceFeePercent
	if serviceFeePercent == 0 {
		serviceFeePercent = c.appConfig.Platform.DefaultServiceFeePercent
	}

	records, err := c.payments.GetPaymentsInRange(uint(clubID), start, end)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, Build(records, serviceFeePercent, start, end))
}
