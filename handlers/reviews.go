package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/openshelf/elibrary/models"
	"github.com/openshelf/elibrary/service"
	"github.com/openshelf/elibrary/store"
)

type ReviewsHandler struct {
	DB      *store.DB
	Ratings *service.RatingAggregator
}

// List returns a book's reviews. GET /api/reviews?bookId=
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		respondError(w, http.StatusBadRequest, "Book ID is required")
		return
	}
	reviews, err := h.DB.ListReviews(r.Context(), bookID)
	if err != nil {
		log.Printf("list reviews for %s: %v", bookID, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

type CreateReviewRequest struct {
	BookID   string `json:"bookId" validate:"required"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// Create stores a review and recomputes the book's rating aggregate before
// responding. POST /api/reviews
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Book ID and a rating between 1 and 5 are required")
		return
	}
	if req.UserName == "" {
		req.UserName = "Anonymous"
	}
	review := &models.Review{
		BookID:   req.BookID,
		UserID:   req.UserID,
		UserName: req.UserName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := h.DB.InsertReview(r.Context(), review); err != nil {
		log.Printf("create review: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}
	// The review is stored either way; a failed aggregate write is logged
	// and repaired by the next recompute.
	if err := h.Ratings.Recompute(r.Context(), req.BookID); err != nil {
		log.Printf("recompute rating for %s: %v", req.BookID, err)
	}
	respondJSON(w, http.StatusOK, map[string]any{"review": review})
}
