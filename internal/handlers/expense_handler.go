package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spendly/internal/services"
	"spendly/internal/uuid"
)

// ExpenseHandler handles expense requests.
type ExpenseHandler struct {
	expenses services.ExpenseServicer
	users    services.UserServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses services.ExpenseServicer, users services.UserServicer) *ExpenseHandler {
	return &ExpenseHandler{
		expenses: expenses,
		users:    users,
	}
}

// CreateExpenseRequest represents the payload for creating an expense.
// The owner is never part of the payload; it always comes from the token.
type CreateExpenseRequest struct {
	Name     string  `json:"name" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category" binding:"required,uuid"`
	Date     *string `json:"date"`
}

// UpdateExpenseRequest represents a partial expense patch. Absent fields
// are left unchanged.
type UpdateExpenseRequest struct {
	Name     *string  `json:"name"`
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category *string  `json:"category" binding:"omitempty,uuid"`
	Date     *string  `json:"date"`
}

// ownExpensesQuery holds the optional month/year filter for the
// caller-scoped listing. The filter applies only when both are present.
type ownExpensesQuery struct {
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  *int `form:"year" binding:"omitempty,min=1970,max=9999"`
}

// parseDate parses an optional RFC 3339 date string.
func parseDate(raw *string) (*time.Time, []string) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, []string{"date: must be a valid RFC 3339 timestamp"}
	}
	return &parsed, nil
}

// CreateExpense handles expense creation
// @Summary     Create an expense
// @Description Create an expense owned by the authenticated caller
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created with category expanded"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err)
		return
	}

	date, msgs := parseDate(req.Date)
	if msgs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgs})
		return
	}

	expense, err := h.expenses.CreateExpense(userID, req.Name, req.Amount, req.Category, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// UpdateExpense handles partial expense updates
// @Summary     Update an expense
// @Description Patch an expense the caller owns; the owner field is never updatable
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       expenseId path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated expense with category expanded"
// @Failure     400 {object} map[string]interface{} "Invalid input or ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Expense or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{expenseId} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID := c.Param("expenseId")
	if !uuid.IsValid(expenseID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid expense ID format"})
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err)
		return
	}

	date, msgs := parseDate(req.Date)
	if msgs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgs})
		return
	}

	expense, err := h.expenses.UpdateExpense(userID, expenseID, services.ExpensePatch{
		Name:       req.Name,
		Amount:     req.Amount,
		CategoryID: req.Category,
		Date:       date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles single expense deletion
// @Summary     Delete an expense
// @Description Delete an expense the caller owns
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       expenseId path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{expenseId} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID := c.Param("expenseId")
	if !uuid.IsValid(expenseID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid expense ID format"})
		return
	}

	if err := h.expenses.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// DeleteDispatch routes DELETE /expenses/me/all to the bulk handler and
// DELETE /expenses/:expenseId to the single handler. They share one
// catch-all route because Gin cannot register the static me/all segment
// alongside the :expenseId wildcard in the same method tree.
func (h *ExpenseHandler) DeleteDispatch(c *gin.Context) {
	path := strings.Trim(c.Param("expensePath"), "/")
	if path == "me/all" {
		h.DeleteOwnExpenses(c)
		return
	}
	if strings.Contains(path, "/") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}

	c.Params = append(c.Params, gin.Param{Key: "expenseId", Value: path})
	h.DeleteExpense(c)
}

// DeleteOwnExpenses handles bulk deletion of the caller's expenses
// @Summary     Delete all own expenses
// @Description Delete every expense the caller owns; owning none is not an error
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Deletion result with count"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/me/all [delete]
func (h *ExpenseHandler) DeleteOwnExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.expenses.DeleteOwnExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if count == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":      "No expenses to delete",
			"deletedCount": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "All expenses deleted successfully",
		"deletedCount": count,
	})
}

// GetExpenses handles the global expense listing
// @Summary     List all expenses
// @Description List every expense with category and owner expanded, newest first, plus global totals
// @Tags        expenses
// @Produce     json
// @Success     200 {object} map[string]interface{} "Expenses and summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	expenses, summary, err := h.expenses.GetExpenses()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"summary":  summary,
	})
}

// GetUserExpenses handles listing any user's expenses by ID
// @Summary     List a user's expenses
// @Description List the given user's expenses with category expanded, newest first, plus totals
// @Tags        expenses
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} map[string]interface{} "Expenses and summary"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/user/{userId} [get]
func (h *ExpenseHandler) GetUserExpenses(c *gin.Context) {
	userID := c.Param("userId")
	if !uuid.IsValid(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID format"})
		return
	}

	if _, err := h.users.GetUserByID(userID); err != nil {
		respondWithError(c, err)
		return
	}

	expenses, summary, err := h.expenses.GetUserExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"summary":  summary,
	})
}

// GetOwnExpenses handles the caller-scoped expense listing
// @Summary     List own expenses
// @Description List the caller's expenses, optionally filtered to one month, with totals and filter echo
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), requires year"
// @Param       year  query int false "Year, requires month"
// @Success     200 {object} map[string]interface{} "Expenses and summary"
// @Failure     400 {object} map[string]interface{} "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/me [get]
func (h *ExpenseHandler) GetOwnExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ownExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithValidationError(c, err)
		return
	}

	var filter *services.MonthFilter
	if query.Month != nil && query.Year != nil {
		filter = &services.MonthFilter{Month: *query.Month, Year: *query.Year}
	}

	expenses, summary, err := h.expenses.GetOwnExpenses(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"summary":  summary,
	})
}
