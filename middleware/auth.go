package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"costconsole/backend/config"
	"costconsole/backend/logging"
)

// Define context keys
type contextKey string

const UserIDKey contextKey = "user_id"
const UserRoleKey contextKey = "user_role"

// tokenVerifier is the part of the Firebase auth client the middleware uses
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ErrNoCredentials is returned outside development when no Firebase credentials are configured
var ErrNoCredentials = errors.New("no Firebase credentials configured")

var (
	firebaseAuth tokenVerifier
	devAuth      bool
	devUserID    = "admin-user-1"
)

// InitializeFirebase initializes the Firebase Admin SDK. Without credentials in
// development the middleware authenticates every request as the configured
// development user; outside development that is an error and requests are rejected.
func InitializeFirebase(ctx context.Context, cfg config.AuthConfig, development bool) error {
	log := logging.L().Named("auth")
	if cfg.DevUserID != "" {
		devUserID = cfg.DevUserID
	}
	firebaseAuth = nil
	devAuth = false

	var opt option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		log.Info("Using JSON Firebase credentials from configuration")
		opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	case cfg.CredentialsBase64 != "":
		log.Info("Using base64-encoded Firebase credentials from configuration")
		credBytes, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
		if err != nil {
			return fmt.Errorf("error decoding base64 Firebase credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(credBytes)
	case cfg.CredentialsFile != "":
		log.Info("Using Firebase credentials file", zap.String("file", cfg.CredentialsFile))
		opt = option.WithCredentialsFile(cfg.CredentialsFile)
	case development:
		log.Warn("No Firebase credentials found, running with auth checks disabled",
			zap.String("dev_user_id", devUserID))
		devAuth = true
		return nil
	default:
		return ErrNoCredentials
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error getting Firebase Auth client: %w", err)
	}
	firebaseAuth = client

	log.Info("Firebase Admin SDK initialized", zap.String("project_id", cfg.ProjectID))
	return nil
}

// AuthMiddleware verifies Firebase ID tokens from the Authorization header
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth for OPTIONS requests (CORS preflight)
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if firebaseAuth == nil {
			if !devAuth {
				http.Error(w, "Unauthorized: Authentication is not configured", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, devUserID)
			ctx = context.WithValue(ctx, UserRoleKey, "admin")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := verifyToken(r.Context(), idToken)
		if err != nil {
			logging.L().Named("auth").Info("Rejected token", zap.Error(err))
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, token.UID)
		if role, ok := token.Claims["role"].(string); ok {
			ctx = context.WithValue(ctx, UserRoleKey, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// verifyToken verifies the Firebase ID token
func verifyToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, errors.New("firebase auth client not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}
	return token, nil
}

// GetUserIDFromContext retrieves the user ID from the request context
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserRoleFromContext retrieves the role claim from the request context
func GetUserRoleFromContext(r *http.Request) string {
	role, _ := r.Context().Value(UserRoleKey).(string)
	return role
}
