package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/elibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookFilter restricts ListBooks. CategoryAll matches every category.
type BookFilter struct {
	Category string
	Search   string
}

// CategoryAll is the sentinel category meaning "no category restriction".
const CategoryAll = "all"

func buildBookQuery(filter BookFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" && filter.Category != CategoryAll {
		query["category"] = filter.Category
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"author": re},
		}
	}
	return query
}

// ListBooks returns stored books newest-first, optionally restricted by
// category and a case-insensitive title/author substring search.
func (db *DB) ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, buildBookQuery(filter),
		options.Find().SetSort(bson.M{"uploaded_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []bson.M
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	books := make([]models.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, *BookFromRecord(rec))
	}
	return books, nil
}

// GetBookAndCountView fetches a book and counts the view in one atomic
// update, so concurrent fetches never lose an increment.
func (db *DB) GetBookAndCountView(ctx context.Context, id string) (*models.Book, error) {
	res := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var rec bson.M
	if err := res.Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return BookFromRecord(rec), nil
}

// BookByID fetches a book without touching its view count.
func (db *DB) BookByID(ctx context.Context, id string) (*models.Book, error) {
	var rec bson.M
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return BookFromRecord(rec), nil
}

// normalizeNewBook stamps server-owned fields on a book about to be
// inserted. Counters and aggregates always start at zero and the source is
// always "user", whatever the client sent.
func normalizeNewBook(book *models.Book) {
	book.ID = uuid.NewString()
	book.UploadedAt = time.Now().UTC()
	book.ViewCount = 0
	book.DownloadCount = 0
	book.AverageRating = 0
	book.TotalReviews = 0
	book.Source = models.SourceUser
}

// InsertBook stores a new locally uploaded book, assigning its identifier
// and timestamp and zeroing all counters.
func (db *DB) InsertBook(ctx context.Context, book *models.Book) error {
	normalizeNewBook(book)
	_, err := db.Books().InsertOne(ctx, BookToRecord(book))
	return err
}

// UpdateBook applies a camelCase partial update and returns the updated
// book. Unknown fields in the patch are ignored.
func (db *DB) UpdateBook(ctx context.Context, id string, patch map[string]any) (*models.Book, error) {
	rec := BookPatchToRecord(patch)
	if len(rec) == 0 {
		return db.BookByID(ctx, id)
	}
	res := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": rec},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var updated bson.M
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return BookFromRecord(updated), nil
}

// DeleteBook removes a book and returns the deleted record so callers can
// clean up stored files. Deleting an unknown id is an error, not a no-op.
func (db *DB) DeleteBook(ctx context.Context, id string) (*models.Book, error) {
	res := db.Books().FindOneAndDelete(ctx, bson.M{"_id": id})
	var rec bson.M
	if err := res.Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return BookFromRecord(rec), nil
}

// IncrementDownloadCount counts one download atomically.
func (db *DB) IncrementDownloadCount(ctx context.Context, id string) error {
	res, err := db.Books().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"download_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBookRating writes a recomputed rating aggregate onto a book.
func (db *DB) UpdateBookRating(ctx context.Context, id string, average float64, total int) error {
	res, err := db.Books().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"average_rating": average, "total_reviews": total}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
