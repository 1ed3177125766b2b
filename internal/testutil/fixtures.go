package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password used by all user fixtures.
const TestPassword = "password123"

// CreateTestUser creates a credential user with a hashed password and
// unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a credential user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGoogleUser creates a federated-only user: no password, only a
// Google UID.
func CreateTestGoogleUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	uid := fmt.Sprintf("google-uid-%d", n)
	user := &models.User{
		Name:      fmt.Sprintf("Google User %d", n),
		Email:     fmt.Sprintf("google%d@test.com", n),
		GoogleUID: &uid,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test google user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  fmt.Sprintf("Test Category %d", nextID()),
		Color: "#FF0000",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense dated now.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount float64) *models.Expense {
	t.Helper()
	return CreateTestExpenseAt(t, db, userID, categoryID, amount, time.Now())
}

// CreateTestExpenseAt creates an expense with the given date.
func CreateTestExpenseAt(t *testing.T, db *gorm.DB, userID, categoryID string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Name:       fmt.Sprintf("Test Expense %d", nextID()),
		Amount:     amount,
		Date:       date,
		CategoryID: categoryID,
		UserID:     userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
