package service

import (
	"context"

	"github.com/openshelf/elibrary/models"
)

// RatingStore is the slice of the store the aggregator needs.
type RatingStore interface {
	ListReviews(ctx context.Context, bookID string) ([]models.Review, error)
	UpdateBookRating(ctx context.Context, bookID string, average float64, total int) error
}

// RatingAggregator keeps a book's rating aggregate exactly consistent with
// its review set. It always recomputes from the full set rather than
// adjusting incrementally, so the stored average can never drift.
type RatingAggregator struct {
	Store RatingStore
}

// Recompute reads every review for the book and writes back the mean rating
// and review count. With no reviews it writes nothing.
func (a *RatingAggregator) Recompute(ctx context.Context, bookID string) error {
	reviews, err := a.Store.ListReviews(ctx, bookID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	average := float64(sum) / float64(len(reviews))
	return a.Store.UpdateBookRating(ctx, bookID, average, len(reviews))
}
