package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"costconsole/backend/filters"
	"costconsole/backend/services"
)

// GetFilterDefinitions returns the metadata of every filter in display order
func GetFilterDefinitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, filters.Default().Definitions())
}

// GetFilterValues returns the sorted candidates of one filter, each with its
// value and rendering
func GetFilterValues(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	reg := filters.Default()
	def, err := reg.Get(name)
	if err != nil {
		writeError(w, r, "Unknown filter", err)
		return
	}

	items, err := services.LoadFilterValues(r.Context(), reg, name)
	if err != nil {
		writeError(w, r, "Failed to load filter values", err)
		return
	}

	values := make([]filters.AppliedFilterItem, 0, len(items))
	for _, item := range items {
		values = append(values, def.GetAppliedFilterItem(def.GetValue(item), item))
	}
	writeJSON(w, http.StatusOK, values)
}

// GetAppliedFilters returns the chips for the filters applied in the query string.
// Values matching no candidate are reported separately as stale.
func GetAppliedFilters(w http.ResponseWriter, r *http.Request) {
	applied, err := appliedFromQuery(r)
	if err != nil {
		writeError(w, r, "Invalid filters", err)
		return
	}

	names := make([]string, 0, len(applied))
	for name := range applied {
		names = append(names, name)
	}
	if len(names) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"applied": []filters.AppliedFilter{}, "stale": filters.Applied{}})
		return
	}

	reg := filters.Default()
	candidates, err := services.LoadCandidates(r.Context(), reg, names...)
	if err != nil {
		writeError(w, r, "Failed to load filter values", err)
		return
	}

	view := filters.New(reg, candidates, applied)
	chips := view.AppliedItems()
	if chips == nil {
		chips = []filters.AppliedFilter{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"applied": chips, "stale": view.Stale()})
}
