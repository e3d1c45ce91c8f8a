package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"costconsole/backend/filters"
	"costconsole/backend/logging"
	"costconsole/backend/recommendations"
	"costconsole/backend/searchparams"
	"costconsole/backend/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L().Warn("Failed to encode response", zap.Error(err))
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, filters.ErrUnknownFilter),
		errors.Is(err, recommendations.ErrUnknownType):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidFilterConfig),
		errors.Is(err, services.ErrUnsupportedFilter),
		errors.Is(err, services.ErrUnsupportedBreakdown),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, filters.ErrSchemaMismatch),
		errors.Is(err, filters.ErrInvalidSelector),
		errors.Is(err, recommendations.ErrUnknownGrouping):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status matching err. Server errors are logged.
func writeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.L().Error(message, zap.String("path", r.URL.Path), zap.Error(err))
	}
	http.Error(w, message+": "+err.Error(), status)
}

// appliedFromQuery extracts the applied filters from the request's query string
func appliedFromQuery(r *http.Request) (filters.Applied, error) {
	return searchparams.ToApplied(filters.Default(), searchparams.FromValues(r.URL.Query()))
}
