package services

import (
	"time"

	"spendly/internal/models"
)

// GoogleLoginInput carries the profile fields confirmed by Google.
type GoogleLoginInput struct {
	Email     string
	Name      string
	PhotoURL  string
	GoogleUID string
}

// UserSummary is a user row in the public listing, with an aggregate
// count of the expenses the user owns.
type UserSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ExpensesCount int64     `json:"expensesCount"`
}

// UserServicer defines the contract for user and login business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers() ([]UserSummary, error)
	AttemptLogin(email, password string) (*models.User, error)
	GoogleLogin(input GoogleLoginInput) (*models.User, error)
}

// CategoryServicer defines the contract for category business logic.
type CategoryServicer interface {
	CreateCategory(name, color string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
}

// ExpenseSummary holds aggregate totals over a set of expenses.
type ExpenseSummary struct {
	TotalExpenses int64   `json:"totalExpenses"`
	TotalAmount   float64 `json:"totalAmount"`
}

// MonthFilter restricts expenses to the half-open interval
// [first day of the month, first day of the next month).
type MonthFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// OwnSummary extends ExpenseSummary for the caller-scoped listing: it also
// carries the caller's unfiltered expense count and echoes the applied
// filter (null when none was supplied).
type OwnSummary struct {
	TotalExpenses     int64        `json:"totalExpenses"`
	TotalAmount       float64      `json:"totalAmount"`
	TotalUserExpenses int64        `json:"totalUserExpenses"`
	Filter            *MonthFilter `json:"filter"`
}

// ExpensePatch is a partial update of an expense. Nil fields are left
// untouched. The owner is deliberately not a patchable field.
type ExpensePatch struct {
	Name       *string
	Amount     *float64
	CategoryID *string
	Date       *time.Time
}

// ExpenseServicer defines the contract for expense business logic.
type ExpenseServicer interface {
	CreateExpense(userID, name string, amount float64, categoryID string, date *time.Time) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, patch ExpensePatch) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	DeleteOwnExpenses(userID string) (int64, error)
	GetExpenses() ([]models.Expense, *ExpenseSummary, error)
	GetUserExpenses(userID string) ([]models.Expense, *ExpenseSummary, error)
	GetOwnExpenses(userID string, filter *MonthFilter) ([]models.Expense, *OwnSummary, error)
}
