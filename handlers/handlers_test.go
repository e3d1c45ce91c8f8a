package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costconsole/backend/config"
	"costconsole/backend/filters"
	"costconsole/backend/jira"
	"costconsole/backend/models"
	"costconsole/backend/recommendations"
	"costconsole/backend/security"
)

var jiraFallback = config.JiraConfig{Issuer: "costconsole-test"}

func TestMain(m *testing.M) {
	if err := security.InitializeEncryption("handlers-test-key"); err != nil {
		panic(err)
	}
	m.Run()
}

func newTestRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", HealthCheck).Methods("GET")
	r.HandleFunc("/filters", GetFilterDefinitions).Methods("GET")
	r.HandleFunc("/filters/applied", GetAppliedFilters).Methods("GET")
	r.HandleFunc("/filters/{name}/values", GetFilterValues).Methods("GET")
	r.HandleFunc("/search-params/equal", CompareSearchParams).Methods("POST")
	r.HandleFunc("/expenses/breakdown", GetExpensesBreakdown).Methods("GET")
	r.HandleFunc("/runs", GetRuns).Methods("GET")
	r.HandleFunc("/runs/summary", GetRunsSummary).Methods("GET")
	r.HandleFunc("/recommendations", GetRecommendationTypes).Methods("GET")
	r.HandleFunc("/recommendations/summary", GetRecommendationSummary).Methods("GET")
	r.HandleFunc("/recommendations/summary/refresh", RefreshRecommendationSummary).Methods("POST")
	r.HandleFunc("/recommendations/{type}", GetRecommendation).Methods("GET")
	r.HandleFunc("/recommendations/{type}/columns", GetRecommendationColumns).Methods("GET")
	r.HandleFunc("/saved-filters", GetSavedFilters).Methods("GET")
	r.HandleFunc("/saved-filters", CreateSavedFilter).Methods("POST")
	r.HandleFunc("/saved-filters/default", GetDefaultSavedFilter).Methods("GET")
	r.HandleFunc("/saved-filters/{id}", GetSavedFilter).Methods("GET")
	r.HandleFunc("/saved-filters/{id}", UpdateSavedFilter).Methods("PUT")
	r.HandleFunc("/saved-filters/{id}", DeleteSavedFilter).Methods("DELETE")

	jh := NewJiraHandler(jiraFallback)
	r.HandleFunc("/jira/status", jh.GetStatus).Methods("GET")
	r.HandleFunc("/integrations/jira", jh.GetIntegration).Methods("GET")
	r.HandleFunc("/integrations/jira", jh.SaveIntegration).Methods("PUT")
	return r
}

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rr))
}

func TestGetFilterDefinitions(t *testing.T) {
	rr := serve(t, NewAuthenticatedRequest("GET", "/filters", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	defs := decode[[]map[string]any](t, rr)
	require.Len(t, defs, len(filters.Default().Definitions()))
	assert.Equal(t, "pool", defs[0]["filterName"])
	assert.Equal(t, "pool_id", defs[0]["apiName"])
}

func TestGetFilterValues(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, NewAuthenticatedRequest("GET", "/filters/pool/values", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	values := decode[[]filters.AppliedFilterItem](t, rr)
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = v.DisplayedValueString
	}
	assert.Equal(t, []string{"Acme", "Eng", "ML Platform", "Sales"}, labels)

	rr = serve(t, NewAuthenticatedRequest("GET", "/filters/nope/values", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetAppliedFilters(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, NewAuthenticatedRequest("GET", "/filters/applied?pool_id=p1&region=nowhere&tab=expenses", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Applied []filters.AppliedFilter `json:"applied"`
		Stale   filters.Applied         `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Applied, 1)
	assert.Equal(t, "pool", body.Applied[0].Filter)
	assert.Equal(t, "Eng", body.Applied[0].DisplayedValueString)
	assert.Equal(t, filters.Applied{"region": {"nowhere"}}, body.Stale)

	rr = serve(t, NewAuthenticatedRequest("GET", "/filters/applied", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"applied": [], "stale": {}}`, rr.Body.String())

	rr = serve(t, NewAuthenticatedRequest("GET", "/filters/applied?active=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCompareSearchParams(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		equal bool
	}{
		{"Scalar and single element", `{"a": {"pool_id": "p1"}, "b": {"pool_id": ["p1"]}}`, true},
		{"Order insensitive", `{"a": {"region": ["a", "b"]}, "b": {"region": ["b", "a"]}}`, true},
		{"Null equals missing", `{"a": {"region": null}, "b": {}}`, true},
		{"Different values", `{"a": {"region": "a"}, "b": {"region": "b"}}`, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/search-params/equal", strings.NewReader(tc.body))
			rr := serve(t, req)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, map[string]bool{"equal": tc.equal}, decode[map[string]bool](t, rr))
		})
	}

	rr := serve(t, httptest.NewRequest("POST", "/search-params/equal", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetExpensesBreakdown(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, NewAuthenticatedRequest("GET", "/expenses/breakdown?pool_id=p1*", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	breakdown := decode[models.Breakdown](t, rr)
	assert.Equal(t, 50.0, breakdown.Total)
	require.Len(t, breakdown.Totals, 2)
	assert.Equal(t, "ML Platform", breakdown.Totals[0].Name)

	rr = serve(t, NewAuthenticatedRequest("GET", "/expenses/breakdown?breakdownBy=color", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("GET", "/expenses/breakdown?startDate=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetRuns(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, NewAuthenticatedRequest("GET", "/runs?startDate=2026-01-02&endDate=2026-01-03", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	runs := decode[[]models.Run](t, rr)
	require.Len(t, runs, 2)
	assert.Equal(t, "run2", runs[0].ID)
	assert.Equal(t, "run3", runs[1].ID)

	rr = serve(t, NewAuthenticatedRequest("GET", "/runs?status=completed&task_id=t2", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	runs = decode[[]models.Run](t, rr)
	require.Len(t, runs, 1)
	assert.Equal(t, "run4", runs[0].ID)

	rr = serve(t, NewAuthenticatedRequest("GET", "/runs/summary", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 4, decode[models.RunSummary](t, rr).Total)

	rr = serve(t, NewAuthenticatedRequest("GET", "/runs?pool_id=p1", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("GET", "/runs?goals_met=1", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("GET", "/runs?goals_met=true", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.Run](t, rr), 2)
}

func TestRecommendationEndpoints(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, NewAuthenticatedRequest("GET", "/recommendations", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]recommendations.Descriptor](t, rr), len(recommendations.Default().All()))

	rr = serve(t, NewAuthenticatedRequest("GET", "/recommendations/obsolete_images?pool_id=p1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Descriptor recommendations.Descriptor `json:"descriptor"`
		Columns    []recommendations.Column   `json:"columns"`
		Items      []models.Recommendation    `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "obsolete_images", body.Descriptor.Type)
	assert.NotEmpty(t, body.Columns)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "rc1", body.Items[0].ID)

	rr = serve(t, NewAuthenticatedRequest("GET", "/recommendations/obsolete_images/columns", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, body.Columns, decode[[]recommendations.Column](t, rr))

	rr = serve(t, NewAuthenticatedRequest("GET", "/recommendations/unknown_type", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("POST", "/recommendations/summary/refresh", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("GET", "/recommendations/summary?groupBy=category", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	groups := decode[[]recommendations.Group](t, rr)
	require.NotEmpty(t, groups)
	assert.Equal(t, recommendations.CategoryCost, groups[0].Key)

	rr = serve(t, NewAuthenticatedRequest("GET", "/recommendations/summary?groupBy=color", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSavedFilterLifecycle(t *testing.T) {
	SetupTestDB(t)

	create := models.SavedFilterRequest{
		Name:         "Eng subtree",
		ResourceType: "expenses",
		FilterConfig: "pool_id=p1*",
		IsDefault:    true,
	}
	rr := serve(t, NewAuthenticatedRequest("POST", "/saved-filters", create))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[models.SavedFilter](t, rr)
	assert.Equal(t, TestUserID, created.UserID)

	rr = serve(t, NewAuthenticatedRequest("GET", "/saved-filters?resourceType=expenses", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.SavedFilter](t, rr), 1)

	rr = serve(t, NewAuthenticatedRequest("GET", "/saved-filters/default?resourceType=expenses", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decode[models.SavedFilter](t, rr).ID)

	other := MockAuthContext(httptest.NewRequest("GET", "/saved-filters/"+created.ID, nil), "someone-else", "")
	rr = serve(t, other)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	update := create
	update.Name = "Eng only"
	update.FilterConfig = "pool_id=p1"
	rr = serve(t, NewAuthenticatedRequest("PUT", "/saved-filters/"+created.ID, update))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Eng only", decode[models.SavedFilter](t, rr).Name)

	rr = serve(t, NewAuthenticatedRequest("DELETE", "/saved-filters/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("GET", "/saved-filters/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSavedFilterValidation(t *testing.T) {
	SetupTestDB(t)

	testCases := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{
			name:   "No user",
			req:    httptest.NewRequest("GET", "/saved-filters?resourceType=expenses", nil),
			status: http.StatusUnauthorized,
		},
		{
			name:   "Missing resource type",
			req:    NewAuthenticatedRequest("GET", "/saved-filters", nil),
			status: http.StatusBadRequest,
		},
		{
			name:   "Missing name",
			req:    NewAuthenticatedRequest("POST", "/saved-filters", models.SavedFilterRequest{ResourceType: "expenses"}),
			status: http.StatusBadRequest,
		},
		{
			name: "Invalid config",
			req: NewAuthenticatedRequest("POST", "/saved-filters", models.SavedFilterRequest{
				Name: "bad", ResourceType: "expenses", FilterConfig: "active=maybe",
			}),
			status: http.StatusBadRequest,
		},
		{
			name:   "Unknown filter id",
			req:    NewAuthenticatedRequest("GET", "/saved-filters/missing", nil),
			status: http.StatusNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, serve(t, tc.req).Code)
		})
	}
}

func TestJiraIntegration(t *testing.T) {
	SetupTestDB(t)

	rr := serve(t, NewAuthenticatedRequest("GET", "/jira/status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("GET", "/integrations/jira", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, NewAuthenticatedRequest("PUT", "/integrations/jira", map[string]string{"baseUrl": "http://jira.local"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/jira_bus/v2/organization_assignment":
			w.Write([]byte(`{"organization_id": "org", "organization_name": "Acme"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"error_code": "` + jira.CodeUserNotConnected + `", "reason": "not connected"}}`))
		}
	}))
	defer backend.Close()

	rr = serve(t, NewAuthenticatedRequest("PUT", "/integrations/jira", map[string]string{
		"baseUrl":      backend.URL,
		"sharedSecret": "shh",
	}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[map[string]any](t, rr)
	assert.Equal(t, jiraFallback.Issuer, saved["issuer"])
	assert.NotContains(t, rr.Body.String(), "shh")

	rr = serve(t, NewAuthenticatedRequest("GET", "/jira/status", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	status := decode[jira.Status](t, rr)
	assert.Equal(t, jira.StateUserNotConnected, status.State)
	require.NotNil(t, status.Organization)
	assert.Equal(t, "Acme", status.Organization.OrganizationName)
}
