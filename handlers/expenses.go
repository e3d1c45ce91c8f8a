package handlers

import (
	"net/http"

	"costconsole/backend/services"
)

// GetExpensesBreakdown returns expense totals grouped by the breakdownBy parameter
func GetExpensesBreakdown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	breakdownBy := q.Get("breakdownBy")
	if breakdownBy == "" {
		breakdownBy = "pool_id"
	}

	applied, err := appliedFromQuery(r)
	if err != nil {
		writeError(w, r, "Invalid filters", err)
		return
	}

	breakdown, err := services.GetExpensesBreakdown(r.Context(), breakdownBy, q.Get("startDate"), q.Get("endDate"), applied)
	if err != nil {
		writeError(w, r, "Failed to get expenses", err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
