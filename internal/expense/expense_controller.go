package expense

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/utils"
)

const dateLayout = "2006-01-02"

type ExpenseController struct {
	repo ExpenseRepository
}

func NewExpenseController(repo ExpenseRepository) *ExpenseController {
	return &ExpenseController{repo: repo}
}

// CreateCategory godoc
// @Summary Create an expense category
// @Tags expenses
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param category body CategoryInput true "Category"
// @Success 201 {object} Category
// @Failure 409 {object} utils.ErrorResponse "Category name already exists for this club"
// @Router /clubs/{club_id}/expense-categories [post]
// @Security Bearer
func (c *ExpenseController) CreateCategory(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	var input CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	cat := &Category{ClubID: clubID, Name: input.Name}
	if err := c.repo.CreateCategory(cat); err != nil {
		// Unique index on (club_id, name) rejects duplicates.
		utils.ConflictJSON(ctx, "category already exists")
		return
	}

	ctx.JSON(http.StatusCreated, cat)
}

// GetClubCategories godoc
// @Summary List a club's expense categories
// @Tags expenses
// @Produce json
// @Param club_id path int true "Club ID"
// @Success 200 {array} Category
// @Router /clubs/{club_id}/expense-categories [get]
// @Security Bearer
func (c *ExpenseController) GetClubCategories(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	cats, err := c.repo.GetClubCategories(clubID)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, cats)
}

// DeleteCategory godoc
// @Summary Delete an expense category
// @Description Fails when expenses are recorded against the category
// @Tags expenses
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Category ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Category not found"
// @Failure 409 {object} utils.ErrorResponse "Category in use"
// @Router /clubs/{club_id}/expense-categories/{id} [delete]
// @Security Bearer
func (c *ExpenseController) DeleteCategory(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid category id")
		return
	}

	if err := c.repo.DeleteCategory(uint(id)); err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			utils.NotFoundJSON(ctx, "category")
		case errors.Is(err, ErrCategoryInUse):
			utils.ConflictJSON(ctx, err.Error())
		default:
			utils.InternalErrorJSON(ctx, err)
		}
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "category deleted", nil)
}

// CreateExpense godoc
// @Summary Record a club expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param club_id path int true "Club ID"
// @Param expense body ExpenseInput true "Expense"
// @Success 201 {object} Expense
// @Failure 400 {object} utils.ErrorResponse "Invalid input or unknown category"
// @Router /clubs/{club_id}/expenses [post]
// @Security Bearer
func (c *ExpenseController) CreateExpense(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	var input ExpenseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		utils.BadRequestJSON(ctx, "date must be YYYY-MM-DD")
		return
	}

	cat, err := c.repo.GetCategoryByID(input.CategoryID)
	if err != nil || cat.ClubID != clubID {
		utils.BadRequestJSON(ctx, "unknown expense category")
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		utils.UnauthorizedJSON(ctx)
		return
	}

	e := &Expense{
		ClubID:      clubID,
		CategoryID:  cat.ID,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        date,
		RecordedBy:  userID,
	}
	if err := c.repo.CreateExpense(e); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}
	e.Category = *cat

	ctx.JSON(http.StatusCreated, e)
}

// GetClubExpenses godoc
// @Summary List club expenses
// @Tags expenses
// @Produce json
// @Param club_id path int true "Club ID"
// @Param start_date query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param end_date query string false "End date (YYYY-MM-DD, inclusive)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse
// @Router /clubs/{club_id}/expenses [get]
// @Security Bearer
func (c *ExpenseController) GetClubExpenses(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	var start, end time.Time
	if s := ctx.Query("start_date"); s != "" {
		if start, err = time.Parse(dateLayout, s); err != nil {
			utils.BadRequestJSON(ctx, "start_date must be YYYY-MM-DD")
			return
		}
	}
	if s := ctx.Query("end_date"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			utils.BadRequestJSON(ctx, "end_date must be YYYY-MM-DD")
			return
		}
		end = parsed.Add(24 * time.Hour)
	}

	page, limit := parsePagination(ctx)
	items, total, err := c.repo.GetClubExpenses(clubID, start, end, limit, (page-1)*limit)
	if err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.PaginatedJSON(ctx, items, page, limit, total)
}

// DeleteExpense godoc
// @Summary Delete an expense entry
// @Tags expenses
// @Produce json
// @Param club_id path int true "Club ID"
// @Param id path int true "Expense ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Expense not found"
// @Router /clubs/{club_id}/expenses/{id} [delete]
// @Security Bearer
func (c *ExpenseController) DeleteExpense(ctx *gin.Context) {
	clubID, err := parseClubID(ctx)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid club id")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid expense id")
		return
	}

	e, err := c.repo.GetExpenseByID(uint(id))
	if err != nil || e.ClubID != clubID {
		utils.NotFoundJSON(ctx, "expense")
		return
	}

	if err := c.repo.DeleteExpense(e.ID); err != nil {
		utils.InternalErrorJSON(ctx, err)
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "expense deleted", nil)
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
