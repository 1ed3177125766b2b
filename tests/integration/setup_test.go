package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"spendly/internal/handlers"
	"spendly/internal/logger"
	"spendly/internal/middleware"
	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	os.Setenv("PORT", "8080")
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/spendly_test")
	os.Setenv("JWT_SECRET", "integration-test-secret")
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite, with the same route layout as the real server.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, categoryService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, userService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	// Public routes
	router.POST("/user", userHandler.Register)
	router.GET("/users", userHandler.GetUsers)
	router.POST("/session", sessionHandler.Login)
	router.POST("/session/google", sessionHandler.GoogleLogin)
	router.POST("/categories", categoryHandler.CreateCategory)
	router.GET("/categories", categoryHandler.GetCategories)
	router.GET("/expenses", expenseHandler.GetExpenses)
	router.GET("/expenses/user/:userId", expenseHandler.GetUserExpenses)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.Auth(userService))
	protected.POST("/expenses", expenseHandler.CreateExpense)
	protected.GET("/expenses/me", expenseHandler.GetOwnExpenses)
	protected.PUT("/expenses/:expenseId", expenseHandler.UpdateExpense)
	protected.DELETE("/expenses/*expensePath", expenseHandler.DeleteDispatch)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the bearer token and user ID.
func (app *testApp) registerUser(t *testing.T, name, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q,"confirmPassword":%q}`,
		name, email, password, password)
	rec := app.request("POST", "/user", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in with credentials and returns the bearer token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/session", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, name, color string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"color":%q}`, name, color)
	rec := app.request("POST", "/categories", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(string)
}

// createExpense creates an expense as the token's user and returns its ID.
func (app *testApp) createExpense(t *testing.T, token, name string, amount float64, categoryID, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"amount":%v,"category":%q`, name, amount, categoryID)
	if date != "" {
		body += fmt.Sprintf(`,"date":%q`, date)
	}
	body += `}`
	rec := app.request("POST", "/expenses", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expense := result["expense"].(map[string]interface{})
	return expense["id"].(string)
}
