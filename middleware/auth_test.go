package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"costconsole/backend/config"
)

// fakeVerifier accepts the token "good-token" for user "firebase-user"
type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good-token" {
		return nil, errors.New("invalid token")
	}
	return &auth.Token{UID: "firebase-user", Claims: map[string]interface{}{"role": "analyst"}}, nil
}

func withVerifier(t *testing.T, v tokenVerifier) {
	t.Helper()
	original, originalDev := firebaseAuth, devAuth
	firebaseAuth = v
	t.Cleanup(func() {
		firebaseAuth = original
		devAuth = originalDev
	})
}

func TestExtractToken(t *testing.T) {
	testCases := []struct {
		name          string
		authHeader    string
		expectedToken string
	}{
		{
			name:          "Valid Bearer token",
			authHeader:    "Bearer test-token-123",
			expectedToken: "test-token-123",
		},
		{
			name:          "Missing Bearer prefix",
			authHeader:    "test-token-123",
			expectedToken: "",
		},
		{
			name:          "Empty auth header",
			authHeader:    "",
			expectedToken: "",
		},
		{
			name:          "Bearer with no token",
			authHeader:    "Bearer ",
			expectedToken: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token := extractToken(tc.authHeader)
			if token != tc.expectedToken {
				t.Errorf("Expected token '%s', got '%s'", tc.expectedToken, token)
			}
		})
	}
}

func TestInitializeFirebaseWithoutCredentials(t *testing.T) {
	withVerifier(t, fakeVerifier{})
	originalDev := devUserID
	defer func() { devUserID = originalDev }()

	if err := InitializeFirebase(context.Background(), config.AuthConfig{DevUserID: "dev-1"}, true); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if firebaseAuth != nil || !devAuth {
		t.Error("Expected auth checks to be disabled without credentials")
	}
	if devUserID != "dev-1" {
		t.Errorf("Expected dev user 'dev-1', got %q", devUserID)
	}
}

func TestInitializeFirebaseWithoutCredentialsInProduction(t *testing.T) {
	withVerifier(t, fakeVerifier{})

	err := InitializeFirebase(context.Background(), config.AuthConfig{}, false)
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Expected ErrNoCredentials, got %v", err)
	}
	if firebaseAuth != nil || devAuth {
		t.Error("Expected no verifier and no development identity")
	}

	called := false
	handler := AuthMiddleware(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("PUT", "/integrations/jira", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if called {
		t.Error("Expected the admin route not to run")
	}
}

func TestInitializeFirebaseBadBase64(t *testing.T) {
	withVerifier(t, nil)
	err := InitializeFirebase(context.Background(), config.AuthConfig{CredentialsBase64: "%%%"}, true)
	if err == nil {
		t.Error("Expected an error for invalid base64 credentials")
	}
}

func TestAuthMiddleware_DevMode(t *testing.T) {
	withVerifier(t, nil)
	devAuth = true

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := GetUserIDFromContext(r); userID != devUserID {
			t.Errorf("Expected user_id %q, got %q", devUserID, userID)
		}
		if role := GetUserRoleFromContext(r); role != "admin" {
			t.Errorf("Expected user_role 'admin', got %q", role)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/filters", nil)
	rr := httptest.NewRecorder()
	AuthMiddleware(testHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("Handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
}

func TestAuthMiddleware_Tokens(t *testing.T) {
	withVerifier(t, fakeVerifier{})

	testCases := []struct {
		name           string
		method         string
		authHeader     string
		expectedStatus int
		expectedUser   string
	}{
		{"Valid token", "GET", "Bearer good-token", http.StatusOK, "firebase-user"},
		{"Invalid token", "GET", "Bearer bad-token", http.StatusUnauthorized, ""},
		{"Missing header", "GET", "", http.StatusUnauthorized, ""},
		{"Preflight skips auth", "OPTIONS", "", http.StatusOK, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser, gotRole string
			handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = GetUserIDFromContext(r)
				gotRole = GetUserRoleFromContext(r)
			}))

			req := httptest.NewRequest(tc.method, "/filters", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
			if gotUser != tc.expectedUser {
				t.Errorf("Expected user %q, got %q", tc.expectedUser, gotUser)
			}
			if tc.expectedUser != "" && gotRole != "analyst" {
				t.Errorf("Expected role claim 'analyst', got %q", gotRole)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name           string
		userID         string
		role           string
		expectedStatus int
	}{
		{"Admin", "u1", "admin", http.StatusOK},
		{"Other role", "u1", "analyst", http.StatusForbidden},
		{"No user", "", "", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest("PUT", "/integrations/jira", nil)
			ctx := req.Context()
			if tc.userID != "" {
				ctx = context.WithValue(ctx, UserIDKey, tc.userID)
				ctx = context.WithValue(ctx, UserRoleKey, tc.role)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req.WithContext(ctx))

			if rr.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
		})
	}
}
