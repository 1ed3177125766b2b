// Package errors provides the error taxonomy for the Spendly API.
// All service-layer errors should use AppError so handlers can map them to
// consistent HTTP responses without leaking internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with a stable error
// code, human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrTokenNotProvided = &AppError{Code: "TOKEN_NOT_PROVIDED", Message: "Token not provided", StatusCode: http.StatusUnauthorized}
	ErrTokenMalformed   = &AppError{Code: "TOKEN_MALFORMED", Message: "Token format invalid", StatusCode: http.StatusUnauthorized}
	ErrTokenInvalid     = &AppError{Code: "TOKEN_INVALID", Message: "Invalid token", StatusCode: http.StatusUnauthorized}
	ErrTokenExpired     = &AppError{Code: "TOKEN_EXPIRED", Message: "Token expired", StatusCode: http.StatusUnauthorized}
	ErrUnauthorized     = &AppError{Code: "UNAUTHORIZED", Message: "Unauthorized", StatusCode: http.StatusUnauthorized}

	// ErrInvalidCredentials deliberately uses one message for unknown email
	// and wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Email or password incorrect!", StatusCode: http.StatusUnauthorized}

	// ErrGoogleAccount is the one login failure that is intentionally
	// distinguishable: the account exists but has no password.
	ErrGoogleAccount = &AppError{Code: "GOOGLE_ACCOUNT", Message: "This account uses Google login. Please sign in with Google.", StatusCode: http.StatusUnauthorized}

	ErrForbidden = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)

// User errors. Duplicate registration returns 400, not 409; existing
// clients depend on it.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrUserExists   = &AppError{Code: "USER_EXISTS", Message: "User already exists", StatusCode: http.StatusBadRequest}
)

// Category errors. Duplicate names return 400 for the same reason.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryExists   = &AppError{Code: "CATEGORY_EXISTS", Message: "Category already exists", StatusCode: http.StatusBadRequest}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)
