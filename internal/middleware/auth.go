package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"spendly/internal/config"
	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// tokenExpiry is the fixed validity window for issued bearer tokens.
const tokenExpiry = 7 * 24 * time.Hour

// getJWTKey returns the JWT signing key from configuration.
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// Claims represents the claims carried by a bearer token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed 7-day bearer token for a user. Both login
// methods and registration funnel through this single routine.
func GenerateToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "spendly-api",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// UserResolver resolves a token subject to a live user record.
type UserResolver interface {
	GetUserByID(id string) (*models.User, error)
}

// Auth verifies the bearer token on protected routes and attaches the
// resolved (userID, email) to the request context. Configuration defects
// surface as 500, never as client auth failures.
func Auth(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.ErrTokenNotProvided)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.ErrTokenMalformed)
			return
		}

		if config.Get().JWTSecret == "" {
			abortWithError(c, apperrors.ErrInternalServer)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return getJWTKey(), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, apperrors.ErrTokenExpired)
				return
			}
			abortWithError(c, apperrors.ErrTokenInvalid)
			return
		}

		// The subject must still exist; a deleted account invalidates
		// otherwise-valid tokens.
		if _, err := users.GetUserByID(claims.UserID); err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
				abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "User not found"))
				return
			}
			abortWithError(c, apperrors.ErrInternalServer)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode, gin.H{"message": err.Message})
}
