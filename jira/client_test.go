package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costconsole/backend/config"
)

const testSecret = "jira-shared-secret"

func writeError(w http.ResponseWriter, status int, code, reason string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"error_code": code, "reason": reason},
	})
}

// fakeBackend answers as the jira backend does. User "lonely" has no employee,
// user "orphan" belongs to no organization.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()

	subject := func(req *http.Request) string {
		raw, ok := strings.CutPrefix(req.Header.Get("Authorization"), "JWT ")
		assert.True(t, ok, "authorization scheme")
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithIssuer("costconsole-jira"))
		assert.NoError(t, err)
		return claims.Subject
	}

	r.HandleFunc("/jira_bus/v2/organization_assignment", func(w http.ResponseWriter, req *http.Request) {
		if subject(req) == "orphan" {
			writeError(w, http.StatusNotFound, CodeOrganizationNotAssigned, "Organization is not assigned")
			return
		}
		json.NewEncoder(w).Encode(OrganizationAssignment{OrganizationID: "org", OrganizationName: "Acme"})
	})
	r.HandleFunc("/jira_bus/v2/user_assignment", func(w http.ResponseWriter, req *http.Request) {
		user := subject(req)
		if user == "lonely" {
			writeError(w, http.StatusNotFound, CodeUserNotConnected, "User is not connected")
			return
		}
		json.NewEncoder(w).Encode(UserAssignment{UserID: user, EmployeeID: "e1"})
	})
	r.HandleFunc("/jira_bus/v2/issue/{key}/shareable_resources", func(w http.ResponseWriter, req *http.Request) {
		subject(req)
		if mux.Vars(req)["key"] == "BROKEN-1" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"shareable_resources": []ShareableResource{{ID: "r1", Name: "web-1", CloudResourceID: "i-1"}},
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := fakeBackend(t)
	c, err := NewClient(config.JiraConfig{
		BaseURL:      srv.URL + "/",
		Issuer:       "costconsole-jira",
		SharedSecret: testSecret,
		Timeout:      time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresSettings(t *testing.T) {
	_, err := NewClient(config.JiraConfig{BaseURL: "https://jira.example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStatus(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	testCases := []struct {
		user     string
		expected State
	}{
		{"alice", StateReady},
		{"lonely", StateUserNotConnected},
		{"orphan", StateOrganizationNotAssigned},
	}
	for _, tc := range testCases {
		t.Run(tc.user, func(t *testing.T) {
			status, err := c.Status(ctx, tc.user)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, status.State)
		})
	}

	status, err := c.Status(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, status.User)
	assert.Equal(t, "alice", status.User.UserID)
	assert.Equal(t, "Acme", status.Organization.OrganizationName)
}

func TestGetShareableResources(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resources, err := c.GetShareableResources(ctx, "alice", "OPS-12")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "web-1", resources[0].Name)

	_, err = c.GetShareableResources(ctx, "alice", "BROKEN-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Code)
}

func TestTokenExpiry(t *testing.T) {
	c, err := NewClient(config.JiraConfig{BaseURL: "https://jira.example.com", SharedSecret: testSecret})
	require.NoError(t, err)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return issued }

	raw, err := c.token("alice")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(tokenTTL), claims.ExpiresAt.Time.UTC())
}
