package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"costconsole/backend/database"
	"costconsole/backend/middleware"
)

// Define a constant for the test user ID that can be used across all tests
const TestUserID = "test-user-id"

// SetupTestDB points database.DB at a seeded in-memory database for the duration of the test
func SetupTestDB(t *testing.T) {
	t.Helper()

	db, err := database.OpenMemory(true)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		db.Close()
	})
}

// MockAuthContext adds a mock user ID and role to the request context for testing
func MockAuthContext(req *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	if role != "" {
		ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
	}
	return req.WithContext(ctx)
}

// NewAuthenticatedRequest creates a new HTTP request with a mock authenticated user
func NewAuthenticatedRequest(method, url string, body any) *http.Request {
	var req *http.Request

	if body != nil {
		buf, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return MockAuthContext(req, TestUserID, "analyst")
}
