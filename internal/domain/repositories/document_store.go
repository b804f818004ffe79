package repositories

import (
	"context"

	"scrapemyuni.backend/internal/domain/entities"
)

// Collection names
const (
	CollectionUsers          = "users"
	CollectionUniversities   = "universities"
	CollectionPrograms       = "programs"
	CollectionApplications   = "applications"
	CollectionAdmins         = "admins"
	CollectionScrapeJobs     = "scrape_jobs"
	CollectionScrapeRequests = "scrape_requests"
)

// Filter is an equality predicate on a (possibly dotted) field path
type Filter struct {
	Field string
	Value interface{}
}

// OrderBy sorts on a field path. Documents lacking the field are excluded
// from ordered results.
type OrderBy struct {
	Field      string
	Descending bool
}

// Query narrows a collection scan. The zero value returns every document in
// identifier order.
type Query struct {
	Filters []Filter
	OrderBy *OrderBy
	Limit   int
	Offset  int
}

// Where appends an equality filter
func (q Query) Where(field string, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// DocumentStore is the document database contract every entity service is
// built on.
type DocumentStore interface {
	// Get returns domainerrors.ErrNotFound when no document has id.
	Get(ctx context.Context, collection, id string) (*entities.Document, error)
	Find(ctx context.Context, collection string, q Query) ([]*entities.Document, error)
	// Add stores fields under a newly assigned identifier and returns it.
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	// Set creates or fully replaces the document with the given identifier.
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Update merges fields into an existing document. Dotted keys address
	// nested fields. Returns domainerrors.ErrNotFound when id does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes the document. Missing documents are not an error.
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
}
