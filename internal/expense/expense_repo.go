package expense

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("expense category not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrCategoryInUse    = errors.New("category has expenses recorded against it")
)

type ExpenseRepository interface {
	CreateCategory(cat *Category) error
	GetClubCategories(clubID uint) ([]Category, error)
	GetCategoryByID(id uint) (*Category, error)
	DeleteCategory(id uint) error

	CreateExpense(e *Expense) error
	GetExpenseByID(id uint) (*Expense, error)
	GetClubExpenses(clubID uint, start, end time.Time, limit, offset int) ([]Expense, int64, error)
	DeleteExpense(id uint) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) CreateCategory(cat *Category) error {
	return r.db.Create(cat).Error
}

func (r *expenseRepository) GetClubCategories(clubID uint) ([]Category, error) {
	var cats []Category
	err := r.db.Where("club_id = ?", clubID).Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *expenseRepository) GetCategoryByID(id uint) (*Category, error) {
	var cat Category
	if err := r.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *expenseRepository) DeleteCategory(id uint) error {
	var count int64
	if err := r.db.Model(&Expense{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	result := r.db.Delete(&Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *expenseRepository) CreateExpense(e *Expense) error {
	return r.db.Create(e).Error
}

func (r *expenseRepository) GetExpenseByID(id uint) (*Expense, error) {
	var e Expense
	if err := r.db.Preload("Category").First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepository) GetClubExpenses(clubID uint, start, end time.Time, limit, offset int) ([]Expense, int64, error) {
	var items []Expense
	var total int64

	query := r.db.Model(&Expense{}).Where("club_id = ?", clubID)
	if !start.IsZero() {
		query = query.Where("date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("date < ?", end)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *expenseRepository) DeleteExpense(id uint) error {
	result := r.db.Delete(&Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
