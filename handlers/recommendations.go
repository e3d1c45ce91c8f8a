package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"costconsole/backend/recommendations"
	"costconsole/backend/services"
)

// GetRecommendationTypes returns every recommendation descriptor
func GetRecommendationTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recommendations.Default().All())
}

// GetRecommendation returns the descriptor of a type, its columns and its
// active items restricted by the filters in the query string
func GetRecommendation(w http.ResponseWriter, r *http.Request) {
	typ := mux.Vars(r)["type"]
	descriptor, err := recommendations.Default().Configure(typ)
	if err != nil {
		writeError(w, r, "Unknown recommendation", err)
		return
	}

	applied, err := appliedFromQuery(r)
	if err != nil {
		writeError(w, r, "Invalid filters", err)
		return
	}

	items, err := services.GetRecommendations(r.Context(), typ, applied)
	if err != nil {
		writeError(w, r, "Failed to get recommendations", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"descriptor": descriptor,
		"columns":    descriptor.Columns(),
		"items":      items,
	})
}

// GetRecommendationColumns returns the table columns of a type
func GetRecommendationColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := recommendations.Default().ConfigureColumns(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, r, "Unknown recommendation", err)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

// GetRecommendationSummary returns the latest summary snapshot, grouped by
// category or status when groupBy is given
func GetRecommendationSummary(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("groupBy")
	if groupBy == "" {
		results, err := services.GetRecommendationSummaries(r.Context())
		if err != nil {
			writeError(w, r, "Failed to get recommendation summary", err)
			return
		}
		writeJSON(w, http.StatusOK, results)
		return
	}

	groups, err := services.GroupRecommendationSummaries(r.Context(), groupBy)
	if err != nil {
		writeError(w, r, "Failed to group recommendation summary", err)
		return
	}
	if groups == nil {
		groups = []recommendations.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

// RefreshRecommendationSummary rebuilds the summary snapshot now
func RefreshRecommendationSummary(w http.ResponseWriter, r *http.Request) {
	if err := services.RefreshRecommendationSummaries(r.Context()); err != nil {
		writeError(w, r, "Failed to refresh recommendation summary", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
