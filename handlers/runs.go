package handlers

import (
	"net/http"

	"costconsole/backend/services"
)

// GetRuns lists ML runs in the startDate..endDate range matching the applied filters
func GetRuns(w http.ResponseWriter, r *http.Request) {
	applied, err := appliedFromQuery(r)
	if err != nil {
		writeError(w, r, "Invalid filters", err)
		return
	}

	q := r.URL.Query()
	runs, err := services.GetRuns(r.Context(), q.Get("startDate"), q.Get("endDate"), applied)
	if err != nil {
		writeError(w, r, "Failed to get runs", err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRunsSummary summarizes the runs GetRuns would list
func GetRunsSummary(w http.ResponseWriter, r *http.Request) {
	applied, err := appliedFromQuery(r)
	if err != nil {
		writeError(w, r, "Invalid filters", err)
		return
	}

	q := r.URL.Query()
	summary, err := services.GetRunsSummary(r.Context(), q.Get("startDate"), q.Get("endDate"), applied)
	if err != nil {
		writeError(w, r, "Failed to summarize runs", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
