package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/middleware"
	"spendly/internal/services"
)

// UserHandler handles registration and user listing.
type UserHandler struct {
	users services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServicer) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with name, email and password
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} map[string]interface{} "User created and token issued"
// @Failure     400 {object} ErrorResponse "Invalid input or user already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err)
		return
	}

	user, err := h.users.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
			"updatedAt": user.UpdatedAt,
		},
		"token": token,
	})
}

// GetUsers handles the public user listing
// @Summary     List users
// @Description List all users with their expense counts, sorted by name
// @Tags        users
// @Produce     json
// @Success     200 {object} map[string]interface{} "List of users"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
