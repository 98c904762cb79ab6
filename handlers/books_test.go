package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing author", `{"title":"X","category":"Fiction"}`},
		{"missing title", `{"author":"Y","category":"Fiction"}`},
		{"missing category", `{"title":"X","author":"Y"}`},
		{"unknown category", `{"title":"X","author":"Y","category":"Knitting"}`},
		{"bad file type", `{"title":"X","author":"Y","category":"Fiction","fileType":"docx"}`},
		{"negative file size", `{"title":"X","author":"Y","category":"Fiction","fileSize":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BooksHandler{} // validation fails before the store is reached
			req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBookRejectsBadJSON(t *testing.T) {
	h := &BooksHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
