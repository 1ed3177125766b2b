package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// expenseService handles expense business logic.
type expenseService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categories CategoryServicer) ExpenseServicer {
	return &expenseService{
		db:         db,
		categories: categories,
	}
}

// CreateExpense creates an expense owned by userID. The owner always comes
// from the authenticated caller, never from client input. The category must
// exist; the date defaults to now when omitted.
func (s *expenseService) CreateExpense(userID, name string, amount float64, categoryID string, date *time.Time) (*models.Expense, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	if _, err := s.categories.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	expenseDate := time.Now()
	if date != nil {
		expenseDate = *date
	}

	expense := &models.Expense{
		Name:       name,
		Amount:     amount,
		Date:       expenseDate,
		CategoryID: categoryID,
		UserID:     userID,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.reload(expense.ID)
}

// UpdateExpense applies a partial patch to an expense the caller owns.
// Each present field is validated with the creation rules; a changed
// category must exist. The owner is never part of the patch.
func (s *expenseService) UpdateExpense(userID, expenseID string, patch ExpensePatch) (*models.Expense, error) {
	expense, err := s.getOwnedExpense(userID, expenseID, "update")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if patch.CategoryID != nil {
		if _, err := s.categories.GetCategoryByID(*patch.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.reload(expense.ID)
}

// DeleteExpense deletes a single expense the caller owns.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.getOwnedExpense(userID, expenseID, "delete")
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteOwnExpenses deletes every expense the caller owns in one store
// operation and returns the number deleted. Owning none is not an error.
func (s *expenseService) DeleteOwnExpenses(userID string) (int64, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Expense{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// GetExpenses returns every expense with category and owner expanded,
// newest first, plus a store-level aggregate over all records.
func (s *expenseService) GetExpenses() ([]models.Expense, *ExpenseSummary, error) {
	var expenses []models.Expense
	err := s.db.Preload("Category").Preload("User").
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	var summary ExpenseSummary
	err = s.db.Model(&models.Expense{}).
		Select("COUNT(*) AS total_expenses, COALESCE(SUM(amount), 0) AS total_amount").
		Scan(&summary).Error
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expenses, &summary, nil
}

// GetUserExpenses returns the given user's expenses with category
// expanded, newest first, plus totals computed over the returned set.
// The user must exist; callers check that before invoking this.
func (s *expenseService) GetUserExpenses(userID string) ([]models.Expense, *ExpenseSummary, error) {
	var expenses []models.Expense
	err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	summary := summarize(expenses)
	return expenses, summary, nil
}

// GetOwnExpenses returns the caller's expenses, optionally restricted to
// one month, newest first. The summary carries the filtered totals, the
// caller's unfiltered expense count, and an echo of the applied filter.
func (s *expenseService) GetOwnExpenses(userID string, filter *MonthFilter) ([]models.Expense, *OwnSummary, error) {
	query := s.db.Preload("Category").Where("user_id = ?", userID)
	if filter != nil {
		start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	var totalUserExpenses int64
	if err := s.db.Model(&models.Expense{}).Where("user_id = ?", userID).Count(&totalUserExpenses).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filtered := summarize(expenses)
	summary := &OwnSummary{
		TotalExpenses:     filtered.TotalExpenses,
		TotalAmount:       filtered.TotalAmount,
		TotalUserExpenses: totalUserExpenses,
		Filter:            filter,
	}
	return expenses, summary, nil
}

// getOwnedExpense loads an expense and authorizes the caller against its
// owner. Both the single and bulk mutation paths funnel through here.
func (s *expenseService) getOwnedExpense(userID, expenseID, action string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if expense.UserID != userID {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "You can only "+action+" your own expenses")
	}

	return &expense, nil
}

// reload fetches an expense with its category expanded for the response.
func (s *expenseService) reload(expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").First(&expense, "id = ?", expenseID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

func summarize(expenses []models.Expense) *ExpenseSummary {
	summary := &ExpenseSummary{TotalExpenses: int64(len(expenses))}
	for _, expense := range expenses {
		summary.TotalAmount += expense.Amount
	}
	return summary
}
