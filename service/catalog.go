package service

import (
	"context"
	"log"

	"github.com/openshelf/elibrary/models"
	"github.com/openshelf/elibrary/store"
)

// LocalCatalog lists books from our own store.
type LocalCatalog interface {
	ListBooks(ctx context.Context, filter store.BookFilter) ([]models.Book, error)
}

// ExternalCatalog queries the third-party metadata service. Its methods
// never fail; they degrade to empty results.
type ExternalCatalog interface {
	SearchByQuery(ctx context.Context, query string) []models.Book
	SearchBySubject(ctx context.Context, category string, limit int) []models.Book
}

// Catalog merges the local store with the external catalog. Local books
// always come first, external books after them, with no deduplication: the
// same work appearing in both sources is listed twice. A failing local
// store contributes nothing instead of failing the whole request.
type Catalog struct {
	Local    LocalCatalog
	External ExternalCatalog
}

// Search returns local title/author matches followed by external free-text
// results for the same query.
func (c *Catalog) Search(ctx context.Context, query string) []models.Book {
	local, err := c.Local.ListBooks(ctx, store.BookFilter{Search: query})
	if err != nil {
		log.Printf("catalog: local search %q: %v", query, err)
		local = nil
	}
	external := c.External.SearchByQuery(ctx, query)
	return merge(local, external)
}

// Browse returns local books in a category followed by external works for
// the matching subject. limit only caps the external contribution.
func (c *Catalog) Browse(ctx context.Context, category string, limit int) []models.Book {
	local, err := c.Local.ListBooks(ctx, store.BookFilter{Category: category})
	if err != nil {
		log.Printf("catalog: local browse %q: %v", category, err)
		local = nil
	}
	external := c.External.SearchBySubject(ctx, category, limit)
	return merge(local, external)
}

func merge(local, external []models.Book) []models.Book {
	merged := make([]models.Book, 0, len(local)+len(external))
	merged = append(merged, local...)
	merged = append(merged, external...)
	return merged
}
