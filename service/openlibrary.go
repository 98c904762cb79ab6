package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openshelf/elibrary/models"
)

const (
	openLibraryBase  = "https://openlibrary.org"
	openLibraryCover = "https://covers.openlibrary.org"

	// searchLimit caps free-text search results.
	searchLimit = 20
	// defaultSubjectLimit caps subject browse results when no limit is given.
	defaultSubjectLimit = 24
)

// openLibrarySubjects maps our category names to Open Library subject slugs.
// Categories not in the table fall back to the lower-cased name.
var openLibrarySubjects = map[string]string{
	"Fiction":         "fiction",
	"Non-Fiction":     "nonfiction",
	"Science":         "science",
	"Technology":      "technology",
	"History":         "history",
	"Biography":       "biography",
	"Self-Help":       "self_help",
	"Business":        "business",
	"Romance":         "romance",
	"Mystery":         "mystery",
	"Fantasy":         "fantasy",
	"Science Fiction": "science_fiction",
	"Poetry":          "poetry",
	"Children":        "children",
	"Young Adult":     "young_adult",
	"Comics":          "comics",
}

// OpenLibraryClient queries the public Open Library API and normalizes its
// two response shapes into books. Failures never surface to callers: a flaky
// third party must not break browsing, so every public method degrades to an
// empty result and logs the cause.
type OpenLibraryClient struct {
	baseURL string
	client  *http.Client
}

// NewOpenLibraryClient builds a client. baseURL overrides the public API
// endpoint (used in tests); pass "" for the default.
func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = openLibraryBase
	}
	return &OpenLibraryClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// searchResponse is the shape of GET /search.json.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	CoverID          int      `json:"cover_i"`
	Subject          []string `json:"subject"`
	Publisher        []string `json:"publisher"`
}

// subjectResponse is the shape of GET /subjects/{slug}.json.
type subjectResponse struct {
	WorkCount int           `json:"work_count"`
	Works     []subjectWork `json:"works"`
}

type subjectWork struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_id"`
	Subject          []string `json:"subject"`
	FirstSentence    string   `json:"first_sentence"`
	Publishers       []string `json:"publishers"`
	Availability     struct {
		ISBN string `json:"isbn"`
	} `json:"availability"`
}

// SearchByQuery runs a free-text search capped at 20 results.
func (c *OpenLibraryClient) SearchByQuery(ctx context.Context, query string) []models.Book {
	endpoint := fmt.Sprintf("%s/search.json?q=%s&limit=%d",
		c.baseURL, url.QueryEscape(query), searchLimit)
	var data searchResponse
	if err := c.getJSON(ctx, endpoint, &data); err != nil {
		log.Printf("open library search %q: %v", query, err)
		return []models.Book{}
	}
	books := make([]models.Book, 0, len(data.Docs))
	for _, doc := range data.Docs {
		if doc.Key == "" || doc.Title == "" {
			continue
		}
		books = append(books, c.bookFromSearchDoc(doc))
	}
	return books
}

// SearchBySubject browses works for one of our categories, mapped to an
// Open Library subject slug. limit <= 0 means the default of 24.
func (c *OpenLibraryClient) SearchBySubject(ctx context.Context, category string, limit int) []models.Book {
	if limit <= 0 {
		limit = defaultSubjectLimit
	}
	slug, ok := openLibrarySubjects[category]
	if !ok {
		slug = strings.ToLower(category)
	}
	endpoint := fmt.Sprintf("%s/subjects/%s.json?limit=%d",
		c.baseURL, url.PathEscape(slug), limit)
	var data subjectResponse
	if err := c.getJSON(ctx, endpoint, &data); err != nil {
		log.Printf("open library subject %q: %v", category, err)
		return []models.Book{}
	}
	books := make([]models.Book, 0, len(data.Works))
	for _, work := range data.Works {
		if work.Key == "" || work.Title == "" {
			continue
		}
		books = append(books, c.bookFromSubjectWork(work))
	}
	return books
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open library returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *OpenLibraryClient) bookFromSearchDoc(doc searchDoc) models.Book {
	book := models.Book{
		ID:            doc.Key,
		Title:         doc.Title,
		Author:        firstOr(doc.AuthorName, "Unknown Author"),
		Description:   subjectSummary(doc.Subject),
		Category:      firstOr(doc.Subject, "Other"),
		UploadedAt:    time.Now().UTC(),
		Source:        models.SourceOpenLibrary,
		OpenLibraryID: doc.Key,
		ISBN:          firstOr(doc.ISBN, ""),
		PublishYear:   doc.FirstPublishYear,
		Publisher:     firstOr(doc.Publisher, ""),
		FileURL:       c.readURL(doc.Key),
	}
	if doc.CoverID != 0 {
		book.CoverImage = coverImageURL(doc.CoverID)
	}
	return book
}

func (c *OpenLibraryClient) bookFromSubjectWork(work subjectWork) models.Book {
	author := "Unknown Author"
	if len(work.Authors) > 0 && work.Authors[0].Name != "" {
		author = work.Authors[0].Name
	}
	description := work.FirstSentence
	if description == "" {
		description = subjectSummary(work.Subject)
	}
	book := models.Book{
		ID:            work.Key,
		Title:         work.Title,
		Author:        author,
		Description:   description,
		Category:      firstOr(work.Subject, "Other"),
		UploadedAt:    time.Now().UTC(),
		Source:        models.SourceOpenLibrary,
		OpenLibraryID: work.Key,
		ISBN:          work.Availability.ISBN,
		PublishYear:   work.FirstPublishYear,
		Publisher:     firstOr(work.Publishers, ""),
		FileURL:       c.readURL(work.Key),
	}
	if work.CoverID != 0 {
		book.CoverImage = coverImageURL(work.CoverID)
	}
	return book
}

// readURL is the read-online page for a work key like "/works/OL45883W".
func (c *OpenLibraryClient) readURL(workKey string) string {
	return c.baseURL + workKey
}

func coverImageURL(coverID int) string {
	return fmt.Sprintf("%s/b/id/%d-M.jpg", openLibraryCover, coverID)
}

// subjectSummary joins the first three subjects as a short description.
func subjectSummary(subjects []string) string {
	if len(subjects) > 3 {
		subjects = subjects[:3]
	}
	return strings.Join(subjects, ", ")
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}
