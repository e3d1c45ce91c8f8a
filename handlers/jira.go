package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"costconsole/backend/config"
	"costconsole/backend/jira"
	"costconsole/backend/middleware"
	"costconsole/backend/models"
	"costconsole/backend/services"
)

// JiraHandler serves the Jira panel endpoints
type JiraHandler struct {
	fallback config.JiraConfig
}

// NewJiraHandler creates a handler using cfg when no integration is stored
func NewJiraHandler(cfg config.JiraConfig) *JiraHandler {
	return &JiraHandler{fallback: cfg}
}

type jiraIntegrationRequest struct {
	BaseURL      string `json:"baseUrl"`
	Issuer       string `json:"issuer"`
	SharedSecret string `json:"sharedSecret"`
}

func (h *JiraHandler) client(w http.ResponseWriter, r *http.Request) (*jira.Client, bool) {
	client, err := services.NewJiraClient(r.Context(), h.fallback)
	if errors.Is(err, jira.ErrNotConfigured) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return nil, false
	}
	if err != nil {
		writeError(w, r, "Failed to create Jira client", err)
		return nil, false
	}
	return client, true
}

// GetStatus returns the panel state of the current user
func (h *JiraHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}

	status, err := client.Status(r.Context(), middleware.GetUserIDFromContext(r))
	if err != nil {
		writeError(w, r, "Failed to get Jira status", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// GetShareableResources returns the resources shared with an issue
func (h *JiraHandler) GetShareableResources(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}

	resources, err := client.GetShareableResources(r.Context(), middleware.GetUserIDFromContext(r), mux.Vars(r)["key"])
	if err != nil {
		var apiErr *jira.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			http.Error(w, "Issue not found", http.StatusNotFound)
			return
		}
		writeError(w, r, "Failed to get shareable resources", err)
		return
	}
	if resources == nil {
		resources = []jira.ShareableResource{}
	}
	writeJSON(w, http.StatusOK, resources)
}

// GetIntegration returns the stored Jira integration without its secret
func (h *JiraHandler) GetIntegration(w http.ResponseWriter, r *http.Request) {
	integration, err := services.GetIntegration(r.Context(), models.IntegrationJira)
	if err != nil {
		writeError(w, r, "Failed to get Jira integration", err)
		return
	}
	writeJSON(w, http.StatusOK, integration)
}

// SaveIntegration stores the Jira base URL and shared secret
func (h *JiraHandler) SaveIntegration(w http.ResponseWriter, r *http.Request) {
	var request jiraIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.BaseURL == "" || request.SharedSecret == "" {
		http.Error(w, "baseUrl and sharedSecret are required", http.StatusBadRequest)
		return
	}
	if request.Issuer == "" {
		request.Issuer = h.fallback.Issuer
	}

	integration, err := services.SaveIntegration(r.Context(), models.IntegrationJira, request.BaseURL, request.Issuer, request.SharedSecret)
	if err != nil {
		writeError(w, r, "Failed to save Jira integration", err)
		return
	}
	writeJSON(w, http.StatusOK, integration)
}
