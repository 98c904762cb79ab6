package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/elibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListReviews returns a book's reviews newest-first.
func (db *DB) ListReviews(ctx context.Context, bookID string) ([]models.Review, error) {
	cur, err := db.Reviews().Find(ctx, bson.M{"book_id": bookID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []bson.M
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	reviews := make([]models.Review, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, *ReviewFromRecord(rec))
	}
	return reviews, nil
}

// InsertReview stores a new review, assigning its identifier and both
// timestamps.
func (db *DB) InsertReview(ctx context.Context, review *models.Review) error {
	review.ID = uuid.NewString()
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	_, err := db.Reviews().InsertOne(ctx, ReviewToRecord(review))
	return err
}
