package models

import "time"

// Book source discriminators.
const (
	SourceUser        = "user"        // uploaded to our own catalog
	SourceOpenLibrary = "openlibrary" // synthesized from Open Library, never persisted
)

type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	CoverImage    string    `json:"coverImage,omitempty"`
	FileURL       string    `json:"fileUrl,omitempty"`
	FileName      string    `json:"fileName,omitempty"`
	FileSize      int64     `json:"fileSize,omitempty"`
	FileType      string    `json:"fileType,omitempty"` // "pdf", "epub" or "mobi"
	UploadedBy    string    `json:"uploadedBy,omitempty"`
	UploadedAt    time.Time `json:"uploadedAt"`
	ViewCount     int       `json:"viewCount"`
	DownloadCount int       `json:"downloadCount"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	Source        string    `json:"source"`
	OpenLibraryID string    `json:"openLibraryId,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishYear   int       `json:"publishYear,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
}
