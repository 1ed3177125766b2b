package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/middleware"
	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/validator"
)

// SessionHandler handles both session-establishing login methods:
// credential and Google federated. Token issuance is shared.
type SessionHandler struct {
	users services.UserServicer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(users services.UserServicer) *SessionHandler {
	return &SessionHandler{users: users}
}

// LoginRequest represents the credential login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest represents the Google federated login payload.
type GoogleLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	PhotoURL string `json:"photoURL"`
	UID      string `json:"uid" binding:"required"`
}

// Login handles credential login
// @Summary     Create a session
// @Description Authenticate with email and password and get a bearer token
// @Tags        sessions
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} map[string]interface{} "Session created"
// @Failure     401 {object} ErrorResponse "Email or password incorrect"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /session [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed credentials are indistinguishable from wrong ones.
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	user, err := h.users.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithSession(c, user)
}

// GoogleLogin handles Google federated login
// @Summary     Create a session via Google
// @Description Sign in (or up) with a Google-confirmed profile and get a bearer token
// @Tags        sessions
// @Accept      json
// @Produce     json
// @Param       request body GoogleLoginRequest true "Google profile data"
// @Success     200 {object} map[string]interface{} "Session created"
// @Failure     400 {object} map[string]interface{} "Invalid data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /session/google [post]
func (h *SessionHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Federated login keeps its own structured validation shape,
		// unlike the deliberately uniform credential login above.
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid data",
			"details": validator.Messages(err),
		})
		return
	}

	user, err := h.users.GoogleLogin(services.GoogleLoginInput{
		Email:     req.Email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		GoogleUID: req.UID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithSession(c, user)
}

// respondWithSession issues the bearer token and writes the session body
// with the user's public profile fields.
func (h *SessionHandler) respondWithSession(c *gin.Context, user *models.User) {
	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	profile := gin.H{
		"name":  user.Name,
		"email": user.Email,
	}
	if user.PhotoURL != "" {
		profile["photoURL"] = user.PhotoURL
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"token": token,
		"user":  profile,
	})
}
