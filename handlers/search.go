package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/openshelf/elibrary/models"
)

// CatalogService is the aggregation façade the search endpoint sits on.
type CatalogService interface {
	Search(ctx context.Context, query string) []models.Book
	Browse(ctx context.Context, category string, limit int) []models.Book
}

type SearchHandler struct {
	Catalog CatalogService
}

// Search serves GET /api/search?q=&category=&limit=. A free-text q takes
// precedence; category alone browses the merged catalog. Either way local
// books come before external ones.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	category := params.Get("category")

	var books []models.Book
	switch {
	case query != "":
		books = h.Catalog.Search(r.Context(), query)
	case category != "":
		limit := 0
		if raw := params.Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}
		books = h.Catalog.Browse(r.Context(), category, limit)
	default:
		respondError(w, http.StatusBadRequest, "A q or category parameter is required")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"books": books,
		"count": len(books),
	})
}
