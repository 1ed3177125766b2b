package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// userService handles user and login business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new credential user with a bcrypt-hashed password.
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers returns every user with their expense count, sorted by name.
func (s *userService) ListUsers() ([]UserSummary, error) {
	var users []UserSummary
	err := s.db.Model(&models.User{}).
		Select("users.id, users.name, users.email, users.created_at, users.updated_at, COUNT(expenses.id) AS expenses_count").
		Joins("LEFT JOIN expenses ON expenses.user_id = users.id AND expenses.deleted_at IS NULL").
		Group("users.id, users.name, users.email, users.created_at, users.updated_at").
		Order("users.name ASC").
		Scan(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if users == nil {
		users = []UserSummary{}
	}
	return users, nil
}

// AttemptLogin verifies credential login. Unknown emails and wrong
// passwords fail identically; the only distinguishable failure is a
// Google-only account, which has no password to check.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" {
		return nil, apperrors.ErrGoogleAccount
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GoogleLogin finds or creates the user for a confirmed Google identity.
// An existing user gets a missing Google UID backfilled and a changed
// photo URL updated; the record is persisted only when something changed.
func (s *userService) GoogleLogin(input GoogleLoginInput) (*models.User, error) {
	user, err := s.GetUserByEmail(input.Email)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrUserNotFound.Code {
			return nil, err
		}

		uid := input.GoogleUID
		user = &models.User{
			Name:      input.Name,
			Email:     strings.ToLower(input.Email),
			PhotoURL:  input.PhotoURL,
			GoogleUID: &uid,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return user, nil
	}

	changed := false
	if user.GoogleUID == nil {
		uid := input.GoogleUID
		user.GoogleUID = &uid
		changed = true
	}
	if input.PhotoURL != "" && user.PhotoURL != input.PhotoURL {
		user.PhotoURL = input.PhotoURL
		changed = true
	}

	if changed {
		if err := s.db.Save(user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}
