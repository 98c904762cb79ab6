package store

import (
	"time"

	"github.com/openshelf/elibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Records are stored with snake_case keys while the API speaks camelCase.
// Early deployments wrote a few documents with camelCase keys, so every read
// prefers the snake_case key and falls back to the camelCase one. Writes only
// ever produce snake_case.

// bookPatchKeys is the exhaustive camelCase -> storage key table for partial
// book updates. Keys not listed here (including "id") are dropped from a
// patch rather than written through.
var bookPatchKeys = map[string]string{
	"title":         "title",
	"author":        "author",
	"description":   "description",
	"category":      "category",
	"coverImage":    "cover_image",
	"fileUrl":       "file_url",
	"fileName":      "file_name",
	"fileSize":      "file_size",
	"fileType":      "file_type",
	"uploadedBy":    "uploaded_by",
	"uploadedAt":    "uploaded_at",
	"viewCount":     "view_count",
	"downloadCount": "download_count",
	"averageRating": "average_rating",
	"totalReviews":  "total_reviews",
	"source":        "source",
	"openLibraryId": "open_library_id",
	"isbn":          "isbn",
	"publishYear":   "publish_year",
	"publisher":     "publisher",
}

// BookToRecord converts a book to its storage representation.
func BookToRecord(b *models.Book) bson.M {
	if b == nil {
		return nil
	}
	return bson.M{
		"_id":             b.ID,
		"title":           b.Title,
		"author":          b.Author,
		"description":     b.Description,
		"category":        b.Category,
		"cover_image":     b.CoverImage,
		"file_url":        b.FileURL,
		"file_name":       b.FileName,
		"file_size":       b.FileSize,
		"file_type":       b.FileType,
		"uploaded_by":     b.UploadedBy,
		"uploaded_at":     b.UploadedAt,
		"view_count":      b.ViewCount,
		"download_count":  b.DownloadCount,
		"average_rating":  b.AverageRating,
		"total_reviews":   b.TotalReviews,
		"source":          b.Source,
		"open_library_id": b.OpenLibraryID,
		"isbn":            b.ISBN,
		"publish_year":    b.PublishYear,
		"publisher":       b.Publisher,
	}
}

// BookFromRecord converts a raw storage record back to a book. Missing
// counters default to zero and missing optional fields stay empty; a nil
// record yields nil.
func BookFromRecord(rec bson.M) *models.Book {
	if rec == nil {
		return nil
	}
	return &models.Book{
		ID:            strField(rec, "_id", "id"),
		Title:         strField(rec, "title", "title"),
		Author:        strField(rec, "author", "author"),
		Description:   strField(rec, "description", "description"),
		Category:      strField(rec, "category", "category"),
		CoverImage:    strField(rec, "cover_image", "coverImage"),
		FileURL:       strField(rec, "file_url", "fileUrl"),
		FileName:      strField(rec, "file_name", "fileName"),
		FileSize:      int64Field(rec, "file_size", "fileSize"),
		FileType:      strField(rec, "file_type", "fileType"),
		UploadedBy:    strField(rec, "uploaded_by", "uploadedBy"),
		UploadedAt:    timeField(rec, "uploaded_at", "uploadedAt"),
		ViewCount:     intField(rec, "view_count", "viewCount"),
		DownloadCount: intField(rec, "download_count", "downloadCount"),
		AverageRating: floatField(rec, "average_rating", "averageRating"),
		TotalReviews:  intField(rec, "total_reviews", "totalReviews"),
		Source:        strFieldDefault(rec, "source", "source", models.SourceUser),
		OpenLibraryID: strField(rec, "open_library_id", "openLibraryId"),
		ISBN:          strField(rec, "isbn", "isbn"),
		PublishYear:   intField(rec, "publish_year", "publishYear"),
		Publisher:     strField(rec, "publisher", "publisher"),
	}
}

// BookPatchToRecord translates a camelCase partial-update body into storage
// keys via bookPatchKeys.
func BookPatchToRecord(patch map[string]any) bson.M {
	rec := bson.M{}
	for key, value := range patch {
		storageKey, ok := bookPatchKeys[key]
		if !ok {
			continue
		}
		rec[storageKey] = value
	}
	return rec
}

// ReviewToRecord converts a review to its storage representation.
func ReviewToRecord(r *models.Review) bson.M {
	if r == nil {
		return nil
	}
	return bson.M{
		"_id":        r.ID,
		"book_id":    r.BookID,
		"user_id":    r.UserID,
		"user_name":  r.UserName,
		"rating":     r.Rating,
		"comment":    r.Comment,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}

// ReviewFromRecord converts a raw storage record back to a review.
func ReviewFromRecord(rec bson.M) *models.Review {
	if rec == nil {
		return nil
	}
	return &models.Review{
		ID:        strField(rec, "_id", "id"),
		BookID:    strField(rec, "book_id", "bookId"),
		UserID:    strField(rec, "user_id", "userId"),
		UserName:  strField(rec, "user_name", "userName"),
		Rating:    intField(rec, "rating", "rating"),
		Comment:   strField(rec, "comment", "comment"),
		CreatedAt: timeField(rec, "created_at", "createdAt"),
		UpdatedAt: timeField(rec, "updated_at", "updatedAt"),
	}
}

func fieldValue(rec bson.M, key, legacyKey string) (any, bool) {
	if v, ok := rec[key]; ok && v != nil {
		return v, true
	}
	if v, ok := rec[legacyKey]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func strField(rec bson.M, key, legacyKey string) string {
	return strFieldDefault(rec, key, legacyKey, "")
}

func strFieldDefault(rec bson.M, key, legacyKey, fallback string) string {
	if v, ok := fieldValue(rec, key, legacyKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func intField(rec bson.M, key, legacyKey string) int {
	return int(int64Field(rec, key, legacyKey))
}

func int64Field(rec bson.M, key, legacyKey string) int64 {
	v, ok := fieldValue(rec, key, legacyKey)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func floatField(rec bson.M, key, legacyKey string) float64 {
	v, ok := fieldValue(rec, key, legacyKey)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func timeField(rec bson.M, key, legacyKey string) time.Time {
	v, ok := fieldValue(rec, key, legacyKey)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time().UTC()
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
