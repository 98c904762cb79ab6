package handlers

import (
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/openshelf/elibrary/service"
)

const storageRemediation = "File storage is not configured. Set AWS_S3_BUCKET, AWS_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, and make the bucket public."

var bookContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".epub": "application/epub+zip",
	".mobi": "application/x-mobipocket-ebook",
}

type UploadHandler struct {
	S3       *service.S3Service
	MaxBytes int64
}

// UploadResponse carries the public URLs for the stored file and optional
// cover. fileName is the generated object name, not the client's filename.
type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	CoverURL string `json:"coverUrl,omitempty"`
	FileSize int64  `json:"fileSize"`
}

// Upload stores a book file and optional cover image. POST /api/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := bookContentTypes[ext]
	if !ok {
		respondError(w, http.StatusBadRequest, "Only pdf, epub and mobi files are allowed")
		return
	}
	if h.S3 == nil {
		respondError(w, http.StatusServiceUnavailable, storageRemediation)
		return
	}

	fileKey, err := h.S3.Upload(r.Context(), service.BooksPrefix, header.Filename, file, contentType)
	if err != nil {
		log.Printf("upload %s: %v", header.Filename, err)
		respondErrorDetails(w, http.StatusInternalServerError, "Failed to upload file", err.Error())
		return
	}

	resp := UploadResponse{
		FileURL:  h.S3.PublicURL(fileKey),
		FileName: path.Base(fileKey),
		FileSize: header.Size,
	}

	// Cover upload is best effort; the book is usable without one.
	if cover, coverHeader, err := r.FormFile("coverImage"); err == nil {
		defer cover.Close()
		coverType := coverHeader.Header.Get("Content-Type")
		if coverType == "" {
			coverType = "image/jpeg"
		}
		coverKey, err := h.S3.Upload(r.Context(), service.CoversPrefix, coverHeader.Filename, cover, coverType)
		if err != nil {
			log.Printf("upload cover %s: %v", coverHeader.Filename, err)
		} else {
			resp.CoverURL = h.S3.PublicURL(coverKey)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
