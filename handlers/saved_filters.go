package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"costconsole/backend/middleware"
	"costconsole/backend/models"
	"costconsole/backend/services"
)

// ownedFilter loads the saved filter named in the URL and checks the caller owns it
func ownedFilter(w http.ResponseWriter, r *http.Request) (*models.SavedFilter, bool) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return nil, false
	}

	filterID := mux.Vars(r)["id"]
	if filterID == "" {
		http.Error(w, "Filter ID is required", http.StatusBadRequest)
		return nil, false
	}

	filter, err := services.GetSavedFilterByID(r.Context(), filterID)
	if err != nil {
		writeError(w, r, "Failed to get saved filter", err)
		return nil, false
	}

	if filter.UserID != userID {
		http.Error(w, "Forbidden: You do not have permission to access this filter", http.StatusForbidden)
		return nil, false
	}
	return filter, true
}

// GetSavedFilters returns all saved filters of the current user for a resource type
func GetSavedFilters(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	resourceType := r.URL.Query().Get("resourceType")
	if resourceType == "" {
		http.Error(w, "resourceType query parameter is required", http.StatusBadRequest)
		return
	}

	filters, err := services.GetSavedFilters(r.Context(), userID, resourceType)
	if err != nil {
		writeError(w, r, "Failed to get saved filters", err)
		return
	}
	writeJSON(w, http.StatusOK, filters)
}

// GetDefaultSavedFilter returns the default filter of the current user for a
// resource type, or null
func GetDefaultSavedFilter(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	resourceType := r.URL.Query().Get("resourceType")
	if resourceType == "" {
		http.Error(w, "resourceType query parameter is required", http.StatusBadRequest)
		return
	}

	filter, err := services.GetDefaultFilter(r.Context(), userID, resourceType)
	if err != nil {
		writeError(w, r, "Failed to get default filter", err)
		return
	}
	writeJSON(w, http.StatusOK, filter)
}

// GetSavedFilter returns a specific saved filter
func GetSavedFilter(w http.ResponseWriter, r *http.Request) {
	filter, ok := ownedFilter(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, filter)
}

// CreateSavedFilter creates a new saved filter
func CreateSavedFilter(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request models.SavedFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if request.ResourceType == "" {
		http.Error(w, "resourceType is required", http.StatusBadRequest)
		return
	}

	filter, err := services.CreateSavedFilter(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, "Failed to create saved filter", err)
		return
	}
	writeJSON(w, http.StatusCreated, filter)
}

// UpdateSavedFilter updates an existing saved filter
func UpdateSavedFilter(w http.ResponseWriter, r *http.Request) {
	filter, ok := ownedFilter(w, r)
	if !ok {
		return
	}

	var request models.SavedFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	updated, err := services.UpdateSavedFilter(r.Context(), filter.ID, request)
	if err != nil {
		writeError(w, r, "Failed to update saved filter", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSavedFilter deletes a saved filter
func DeleteSavedFilter(w http.ResponseWriter, r *http.Request) {
	filter, ok := ownedFilter(w, r)
	if !ok {
		return
	}

	if err := services.DeleteSavedFilter(r.Context(), filter.ID); err != nil {
		writeError(w, r, "Failed to delete saved filter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
