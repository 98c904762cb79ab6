package handlers

import (
	"net/http"

	"github.com/openshelf/elibrary/store"
)

type SystemHandler struct {
	DB *store.DB
}

// TestConnection runs a simple query against the store so operators can
// check database connectivity. GET /api/test-connection
func (h *SystemHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	count, err := h.DB.CountBooks(r.Context())
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Database connection working",
		"count":   count,
	})
}
