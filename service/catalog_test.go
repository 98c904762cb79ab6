package service

import (
	"context"
	"errors"
	"testing"

	"github.com/openshelf/elibrary/models"
	"github.com/openshelf/elibrary/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocal struct {
	books      []models.Book
	err        error
	lastFilter store.BookFilter
}

func (f *fakeLocal) ListBooks(_ context.Context, filter store.BookFilter) ([]models.Book, error) {
	f.lastFilter = filter
	return f.books, f.err
}

type fakeExternal struct {
	books        []models.Book
	lastQuery    string
	lastCategory string
	lastLimit    int
}

func (f *fakeExternal) SearchByQuery(_ context.Context, query string) []models.Book {
	f.lastQuery = query
	return f.books
}

func (f *fakeExternal) SearchBySubject(_ context.Context, category string, limit int) []models.Book {
	f.lastCategory = category
	f.lastLimit = limit
	return f.books
}

func localBook(id, title, category string) models.Book {
	return models.Book{ID: id, Title: title, Category: category, Source: models.SourceUser}
}

func externalBook(id, title, category string) models.Book {
	return models.Book{ID: id, Title: title, Category: category, Source: models.SourceOpenLibrary}
}

func TestBrowseLocalBooksComeFirst(t *testing.T) {
	local := &fakeLocal{books: []models.Book{localBook("l-1", "Dune", "Fiction")}}
	external := &fakeExternal{books: []models.Book{
		externalBook("/works/OL893415W", "Dune", "Fiction"),
		externalBook("/works/OL2W", "Dune Messiah", "Fiction"),
	}}
	catalog := &Catalog{Local: local, External: external}

	books := catalog.Browse(context.Background(), "Fiction", 24)
	require.Len(t, books, 3)

	// The stored "Dune" is first; the external "Dune" is kept too — no
	// cross-source deduplication.
	assert.Equal(t, "l-1", books[0].ID)
	assert.Equal(t, models.SourceUser, books[0].Source)
	assert.Equal(t, "/works/OL893415W", books[1].ID)
	assert.Equal(t, models.SourceOpenLibrary, books[1].Source)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)

	assert.Equal(t, "Fiction", local.lastFilter.Category)
	assert.Empty(t, local.lastFilter.Search)
	assert.Equal(t, "Fiction", external.lastCategory)
	assert.Equal(t, 24, external.lastLimit)
}

func TestSearchLocalBooksComeFirst(t *testing.T) {
	local := &fakeLocal{books: []models.Book{localBook("l-1", "Go in Action", "Technology")}}
	external := &fakeExternal{books: []models.Book{externalBook("/works/OL3W", "The Go Programming Language", "Technology")}}
	catalog := &Catalog{Local: local, External: external}

	books := catalog.Search(context.Background(), "go")
	require.Len(t, books, 2)
	assert.Equal(t, models.SourceUser, books[0].Source)
	assert.Equal(t, models.SourceOpenLibrary, books[1].Source)
	assert.Equal(t, "go", local.lastFilter.Search)
	assert.Equal(t, "go", external.lastQuery)
}

func TestSearchLocalFailureDegradesToExternalOnly(t *testing.T) {
	local := &fakeLocal{err: errors.New("connection reset")}
	external := &fakeExternal{books: []models.Book{externalBook("/works/OL4W", "Still Here", "Other")}}
	catalog := &Catalog{Local: local, External: external}

	books := catalog.Search(context.Background(), "anything")
	require.Len(t, books, 1)
	assert.Equal(t, "/works/OL4W", books[0].ID)
}

func TestBrowseBothSourcesEmpty(t *testing.T) {
	catalog := &Catalog{Local: &fakeLocal{}, External: &fakeExternal{}}
	books := catalog.Browse(context.Background(), "Poetry", 0)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}
