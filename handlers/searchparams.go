package handlers

import (
	"encoding/json"
	"net/http"

	"costconsole/backend/searchparams"
)

// CompareSearchParams tells whether two parameter sets select the same view
func CompareSearchParams(w http.ResponseWriter, r *http.Request) {
	var request struct {
		A searchparams.Params `json:"a"`
		B searchparams.Params `json:"b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"equal": searchparams.AreSearchParamsEqual(request.A, request.B),
	})
}
