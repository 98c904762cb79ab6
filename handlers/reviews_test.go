package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Validation failures return before the store is touched, so these tests
// run with a nil DB.

func TestListReviewsRequiresBookID(t *testing.T) {
	h := &ReviewsHandler{}
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Book ID is required")
}

func TestCreateReviewRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing bookId", `{"rating":5}`},
		{"missing rating", `{"bookId":"b-1"}`},
		{"rating too low", `{"bookId":"b-1","rating":0}`},
		{"rating too high", `{"bookId":"b-1","rating":6}`},
		{"rating negative", `{"bookId":"b-1","rating":-3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &ReviewsHandler{}
			req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateReviewRejectsBadJSON(t *testing.T) {
	h := &ReviewsHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
