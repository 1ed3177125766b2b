package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestExpenseFlow_CreateUpdateDelete(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "John", "john@test.com", "password123")
	foodID := app.createCategory(t, "Food", "#FF5733")
	transportID := app.createCategory(t, "Transport", "#3357FF")

	// Step 1: Create an expense; the category comes back expanded.
	rec := app.request("POST", "/expenses",
		fmt.Sprintf(`{"name":"Lunch","amount":12.5,"category":%q}`, foodID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	expense := parseJSON(t, rec)["expense"].(map[string]interface{})
	expenseID := expense["id"].(string)
	category := expense["category"].(map[string]interface{})
	if category["name"] != "Food" {
		t.Errorf("expected expanded Food category, got %v", category["name"])
	}

	// Step 2: Patch the amount and move it to another category.
	rec = app.request("PUT", "/expenses/"+expenseID,
		fmt.Sprintf(`{"amount":20,"category":%q}`, transportID), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["expense"].(map[string]interface{})
	if updated["amount"] != float64(20) {
		t.Errorf("expected amount 20, got %v", updated["amount"])
	}
	if updated["category"].(map[string]interface{})["name"] != "Transport" {
		t.Errorf("expected Transport after move, got %v", updated["category"])
	}
	if updated["name"] != "Lunch" {
		t.Errorf("expected untouched name, got %v", updated["name"])
	}

	// Step 3: Delete it.
	rec = app.request("DELETE", "/expenses/"+expenseID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Expense deleted successfully" {
		t.Errorf("unexpected message: %v", msg)
	}

	// Step 4: It is gone from the caller's listing.
	rec = app.request("GET", "/expenses/me", "", token)
	result := parseJSON(t, rec)
	if expenses := result["expenses"].([]interface{}); len(expenses) != 0 {
		t.Errorf("expected no expenses left, got %d", len(expenses))
	}
}

func TestExpenseFlow_OwnershipIsEnforced(t *testing.T) {
	app := setupApp(t)

	ownerToken, _ := app.registerUser(t, "Owner", "owner@test.com", "password123")
	intruderToken, _ := app.registerUser(t, "Intruder", "intruder@test.com", "password123")
	foodID := app.createCategory(t, "Food", "#FF5733")
	expenseID := app.createExpense(t, ownerToken, "Lunch", 12.5, foodID, "")

	// Update by a non-owner is forbidden.
	rec := app.request("PUT", "/expenses/"+expenseID, `{"name":"Hijacked"}`, intruderToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := parseJSON(t, rec)["message"]; msg != "You can only update your own expenses" {
		t.Errorf("unexpected message: %v", msg)
	}

	// Delete by a non-owner is forbidden.
	rec = app.request("DELETE", "/expenses/"+expenseID, "", intruderToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := parseJSON(t, rec)["message"]; msg != "You can only delete your own expenses" {
		t.Errorf("unexpected message: %v", msg)
	}

	// The expense is untouched and still the owner's.
	rec = app.request("GET", "/expenses/me", "", ownerToken)
	expenses := parseJSON(t, rec)["expenses"].([]interface{})
	if len(expenses) != 1 {
		t.Fatalf("expected the owner to still have 1 expense, got %d", len(expenses))
	}
	if name := expenses[0].(map[string]interface{})["name"]; name != "Lunch" {
		t.Errorf("expected name Lunch, got %v", name)
	}
}

func TestExpenseFlow_Listings(t *testing.T) {
	app := setupApp(t)

	aliceToken, aliceID := app.registerUser(t, "Alice", "alice@test.com", "password123")
	bobToken, _ := app.registerUser(t, "Bob", "bob@test.com", "password123")
	foodID := app.createCategory(t, "Food", "#FF5733")

	app.createExpense(t, aliceToken, "Lunch", 10, foodID, "2025-03-01T12:00:00Z")
	app.createExpense(t, aliceToken, "Dinner", 25, foodID, "2025-03-20T19:00:00Z")
	app.createExpense(t, bobToken, "Snack", 5, foodID, "2025-03-10T16:00:00Z")

	// Global listing: everything, newest first, with owner and summary.
	rec := app.request("GET", "/expenses", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expenses := result["expenses"].([]interface{})
	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(expenses))
	}
	first := expenses[0].(map[string]interface{})
	if first["name"] != "Dinner" {
		t.Errorf("expected newest (Dinner) first, got %v", first["name"])
	}
	owner := first["user"].(map[string]interface{})
	if owner["email"] != "alice@test.com" {
		t.Errorf("expected owner alice@test.com, got %v", owner["email"])
	}
	summary := result["summary"].(map[string]interface{})
	if summary["totalExpenses"] != float64(3) || summary["totalAmount"] != float64(40) {
		t.Errorf("unexpected global summary: %v", summary)
	}

	// Per-user listing.
	rec = app.request("GET", "/expenses/user/"+aliceID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	if got := len(result["expenses"].([]interface{})); got != 2 {
		t.Errorf("expected 2 expenses for alice, got %d", got)
	}
	summary = result["summary"].(map[string]interface{})
	if summary["totalAmount"] != float64(35) {
		t.Errorf("expected totalAmount 35, got %v", summary["totalAmount"])
	}

	// Expense counts appear in the public user listing, sorted by name.
	rec = app.request("GET", "/users", "", "")
	users := parseJSON(t, rec)["users"].([]interface{})
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	aliceEntry := users[0].(map[string]interface{})
	if aliceEntry["name"] != "Alice" {
		t.Errorf("expected Alice first by name, got %v", aliceEntry["name"])
	}
	if aliceEntry["expensesCount"] != float64(2) {
		t.Errorf("expected expensesCount 2, got %v", aliceEntry["expensesCount"])
	}
}

func TestExpenseFlow_MonthFilter(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "John", "john@test.com", "password123")
	foodID := app.createCategory(t, "Food", "#FF5733")

	app.createExpense(t, token, "March start", 10, foodID, "2025-03-01T00:00:00Z")
	app.createExpense(t, token, "March mid", 20, foodID, "2025-03-15T12:00:00Z")
	app.createExpense(t, token, "April start", 40, foodID, "2025-04-01T00:00:00Z")

	rec := app.request("GET", "/expenses/me?month=3&year=2025", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if got := len(result["expenses"].([]interface{})); got != 2 {
		t.Errorf("expected 2 March expenses, got %d", got)
	}
	summary := result["summary"].(map[string]interface{})
	if summary["totalAmount"] != float64(30) {
		t.Errorf("expected filtered totalAmount 30, got %v", summary["totalAmount"])
	}
	if summary["totalUserExpenses"] != float64(3) {
		t.Errorf("expected unfiltered total 3, got %v", summary["totalUserExpenses"])
	}
	filter := summary["filter"].(map[string]interface{})
	if filter["month"] != float64(3) || filter["year"] != float64(2025) {
		t.Errorf("expected filter echo 3/2025, got %v", filter)
	}

	// Month alone is ignored; the filter echo is null.
	rec = app.request("GET", "/expenses/me?month=3", "", token)
	result = parseJSON(t, rec)
	if got := len(result["expenses"].([]interface{})); got != 3 {
		t.Errorf("expected all 3 expenses without a full filter, got %d", got)
	}
	if result["summary"].(map[string]interface{})["filter"] != nil {
		t.Errorf("expected null filter echo, got %v", result["summary"].(map[string]interface{})["filter"])
	}
}

func TestExpenseFlow_BulkDelete(t *testing.T) {
	app := setupApp(t)

	johnToken, _ := app.registerUser(t, "John", "john@test.com", "password123")
	janeToken, _ := app.registerUser(t, "Jane", "jane@test.com", "password123")
	foodID := app.createCategory(t, "Food", "#FF5733")

	app.createExpense(t, johnToken, "Lunch", 10, foodID, "")
	app.createExpense(t, johnToken, "Dinner", 20, foodID, "")
	app.createExpense(t, janeToken, "Snack", 5, foodID, "")

	// John wipes his expenses.
	rec := app.request("DELETE", "/expenses/me/all", "", johnToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk delete failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["message"] != "All expenses deleted successfully" {
		t.Errorf("unexpected message: %v", result["message"])
	}
	if result["deletedCount"] != float64(2) {
		t.Errorf("expected deletedCount 2, got %v", result["deletedCount"])
	}

	// A second wipe finds nothing, and that is still a 200.
	rec = app.request("DELETE", "/expenses/me/all", "", johnToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result = parseJSON(t, rec)
	if result["message"] != "No expenses to delete" {
		t.Errorf("unexpected message: %v", result["message"])
	}
	if result["deletedCount"] != float64(0) {
		t.Errorf("expected deletedCount 0, got %v", result["deletedCount"])
	}

	// Jane's expense was never touched.
	rec = app.request("GET", "/expenses/me", "", janeToken)
	if got := len(parseJSON(t, rec)["expenses"].([]interface{})); got != 1 {
		t.Errorf("expected jane to keep 1 expense, got %d", got)
	}
}

func TestExpenseFlow_NotFoundAndBadIDs(t *testing.T) {
	app := setupApp(t)

	token, _ := app.registerUser(t, "John", "john@test.com", "password123")
	app.createCategory(t, "Food", "#FF5733")

	// Unknown but well-formed expense ID.
	missing := "0198c0f0-0000-7000-8000-000000000000"
	rec := app.request("PUT", "/expenses/"+missing, `{"name":"Nope"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Expense not found" {
		t.Errorf("unexpected message: %v", msg)
	}

	// Malformed IDs are a 400, not a 404.
	rec = app.request("DELETE", "/expenses/not-a-uuid", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Invalid expense ID format" {
		t.Errorf("unexpected message: %v", msg)
	}

	rec = app.request("GET", "/expenses/user/not-a-uuid", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Invalid user ID format" {
		t.Errorf("unexpected message: %v", msg)
	}

	// Unknown user behind a well-formed ID.
	rec = app.request("GET", "/expenses/user/"+missing, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := parseJSON(t, rec)["message"]; msg != "User not found" {
		t.Errorf("unexpected message: %v", msg)
	}

	// Creating against a missing category.
	rec = app.request("POST", "/expenses",
		`{"name":"Lunch","amount":5,"category":"`+missing+`"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Category not found" {
		t.Errorf("unexpected message: %v", msg)
	}
}
