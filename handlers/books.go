package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/openshelf/elibrary/models"
	"github.com/openshelf/elibrary/service"
	"github.com/openshelf/elibrary/store"
)

var validate = validator.New()

type BooksHandler struct {
	DB *store.DB
	S3 *service.S3Service
}

// List returns locally stored books, optionally filtered by ?category= and
// ?search=. GET /api/books
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.BookFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	books, err := h.DB.ListBooks(r.Context(), filter)
	if err != nil {
		log.Printf("list books: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch books")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"books": books})
}

// CreateBookRequest is the client-supplied part of a new book. Identifier,
// timestamp, counters and source are server-assigned whatever the client
// sends.
type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	CoverImage  string `json:"coverImage"`
	FileURL     string `json:"fileUrl"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize" validate:"min=0"`
	FileType    string `json:"fileType" validate:"omitempty,oneof=pdf epub mobi"`
	UploadedBy  string `json:"uploadedBy"`
	ISBN        string `json:"isbn"`
	PublishYear int    `json:"publishYear"`
	Publisher   string `json:"publisher"`
}

// Create stores a new locally uploaded book record. POST /api/books
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Title, author and category are required")
		return
	}
	if !models.IsCategory(req.Category) {
		respondError(w, http.StatusBadRequest, "Unknown category")
		return
	}
	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Category:    req.Category,
		CoverImage:  req.CoverImage,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		FileType:    req.FileType,
		UploadedBy:  req.UploadedBy,
		ISBN:        req.ISBN,
		PublishYear: req.PublishYear,
		Publisher:   req.Publisher,
	}
	if err := h.DB.InsertBook(r.Context(), book); err != nil {
		log.Printf("create book: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create book")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"book": book})
}

// Get fetches one book and counts the view. GET /api/books/{id}
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	book, err := h.DB.GetBookAndCountView(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("get book %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch book")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"book": book})
}

// Patch applies a partial update. PATCH /api/books/{id}
func (h *BooksHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	book, err := h.DB.UpdateBook(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("update book %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update book")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"book": book})
}

// Delete removes a book and, best effort, its stored file and cover.
// DELETE /api/books/{id}
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	book, err := h.DB.DeleteBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("delete book %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete book")
		return
	}
	if h.S3 != nil {
		for _, u := range []string{book.FileURL, book.CoverImage} {
			key, ok := h.S3.KeyFromURL(u)
			if !ok {
				continue
			}
			if err := h.S3.Delete(r.Context(), key); err != nil {
				log.Printf("delete book %s: remove object %s: %v", id, key, err)
			}
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Download counts one download. The actual file transfer happens client-side
// via the book's public file URL. POST /api/books/{id}/download
func (h *BooksHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.DB.IncrementDownloadCount(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("count download %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to record download")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
