package store

import (
	"testing"
	"time"

	"github.com/openshelf/elibrary/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fullBook() *models.Book {
	return &models.Book{
		ID:            "b-1",
		Title:         "Dune",
		Author:        "Frank Herbert",
		Description:   "Desert planet politics",
		Category:      "Science Fiction",
		CoverImage:    "https://cdn.example.com/covers/dune.jpg",
		FileURL:       "https://cdn.example.com/books/dune.epub",
		FileName:      "dune.epub",
		FileSize:      123456,
		FileType:      "epub",
		UploadedBy:    "reader@example.com",
		UploadedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		ViewCount:     42,
		DownloadCount: 7,
		AverageRating: 4.5,
		TotalReviews:  2,
		Source:        models.SourceUser,
		OpenLibraryID: "/works/OL893415W",
		ISBN:          "9780441172719",
		PublishYear:   1965,
		Publisher:     "Chilton Books",
	}
}

func TestBookRecordRoundTrip(t *testing.T) {
	book := fullBook()
	got := BookFromRecord(BookToRecord(book))
	require.NotNil(t, got)
	assert.Equal(t, book, got)
}

func TestReviewRecordRoundTrip(t *testing.T) {
	review := &models.Review{
		ID:        "r-1",
		BookID:    "b-1",
		UserID:    "u-9",
		UserName:  "Paul",
		Rating:    5,
		Comment:   "A classic.",
		CreatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	got := ReviewFromRecord(ReviewToRecord(review))
	require.NotNil(t, got)
	assert.Equal(t, review, got)
}

func TestBookFromRecordNil(t *testing.T) {
	assert.Nil(t, BookFromRecord(nil))
	assert.Nil(t, ReviewFromRecord(nil))
}

func TestBookFromRecordLegacyCamelCaseKeys(t *testing.T) {
	// Early documents were written with camelCase keys; reads must still
	// pick them up when the snake_case key is absent.
	rec := bson.M{
		"id":            "legacy-1",
		"title":         "Legacy Book",
		"author":        "Old Writer",
		"category":      "History",
		"coverImage":    "https://cdn.example.com/covers/legacy.jpg",
		"viewCount":     int32(3),
		"downloadCount": int64(2),
		"averageRating": 3.5,
		"totalReviews":  1,
		"publishYear":   1999,
	}
	book := BookFromRecord(rec)
	require.NotNil(t, book)
	assert.Equal(t, "legacy-1", book.ID)
	assert.Equal(t, "https://cdn.example.com/covers/legacy.jpg", book.CoverImage)
	assert.Equal(t, 3, book.ViewCount)
	assert.Equal(t, 2, book.DownloadCount)
	assert.Equal(t, 3.5, book.AverageRating)
	assert.Equal(t, 1, book.TotalReviews)
	assert.Equal(t, 1999, book.PublishYear)
}

func TestBookFromRecordPrefersSnakeCase(t *testing.T) {
	rec := bson.M{
		"_id":        "b-2",
		"title":      "Both Conventions",
		"author":     "X",
		"category":   "Other",
		"view_count": 10,
		"viewCount":  99,
	}
	book := BookFromRecord(rec)
	require.NotNil(t, book)
	assert.Equal(t, 10, book.ViewCount)
}

func TestBookFromRecordDefaults(t *testing.T) {
	// A partial record: counters default to zero, optional fields stay
	// empty, source falls back to "user".
	rec := bson.M{
		"_id":    "b-3",
		"title":  "Sparse",
		"author": "Y",
	}
	book := BookFromRecord(rec)
	require.NotNil(t, book)
	assert.Zero(t, book.ViewCount)
	assert.Zero(t, book.DownloadCount)
	assert.Zero(t, book.AverageRating)
	assert.Zero(t, book.TotalReviews)
	assert.Empty(t, book.Description)
	assert.Empty(t, book.ISBN)
	assert.Equal(t, models.SourceUser, book.Source)
	assert.True(t, book.UploadedAt.IsZero())
}

func TestBookFromRecordDecodedBSONTypes(t *testing.T) {
	// Values decoded by the driver come back as int32/int64/DateTime.
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := bson.M{
		"_id":            "b-4",
		"title":          "Decoded",
		"author":         "Z",
		"category":       "Science",
		"uploaded_at":    primitive.NewDateTimeFromTime(when),
		"view_count":     int32(5),
		"download_count": int64(6),
		"file_size":      int64(1024),
		"average_rating": float64(4),
		"total_reviews":  int32(8),
	}
	book := BookFromRecord(rec)
	require.NotNil(t, book)
	assert.True(t, book.UploadedAt.Equal(when))
	assert.Equal(t, 5, book.ViewCount)
	assert.Equal(t, 6, book.DownloadCount)
	assert.Equal(t, int64(1024), book.FileSize)
	assert.Equal(t, 4.0, book.AverageRating)
	assert.Equal(t, 8, book.TotalReviews)
}

func TestBookPatchToRecord(t *testing.T) {
	patch := map[string]any{
		"title":         "New Title",
		"averageRating": 4.25,
		"viewCount":     12,
		"id":            "must-not-pass",
		"bogusField":    "dropped",
	}
	rec := BookPatchToRecord(patch)
	assert.Equal(t, bson.M{
		"title":          "New Title",
		"average_rating": 4.25,
		"view_count":     12,
	}, rec)
}

func TestBookPatchToRecordEmpty(t *testing.T) {
	assert.Empty(t, BookPatchToRecord(map[string]any{"unknown": 1}))
	assert.Empty(t, BookPatchToRecord(nil))
}
