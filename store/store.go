// Package store declares the capability contracts of the two backing store
// families. The document store holds the tenant-scoped role and permission
// collections and executes lookup specs at query time; the search index serves
// the read-only module catalog. Both report HTTP-alike statuses which callers
// pass through untouched.
package store

import "context"

type Sort struct {
	Field string
	Order string // "asc" or "desc"
}

// Condition is one equality-condition object. Fields within one condition are
// combined with AND, entries of a condition list with OR.
type Condition map[string]interface{}

type SearchOptions struct {
	From          int
	Size          int
	Word          string
	Sort          []Sort
	SourceInclude []string
	Conditions    []Condition
}

// LookupSpec is a declarative join instruction, executed by the document store
// at query time to denormalize a foreign-key relation into the result.
type LookupSpec struct {
	From         string // physical storage identifier of the joined collection
	LocalField   string
	ForeignField string
	As           string
	Unwind       bool // collapse the joined array to its single element
}

type SearchResult struct {
	Items      []Source
	TotalCount int
	Status     int
	Message    string
}

type ItemResult struct {
	Item    *Source // nil when the store found nothing
	Status  int
	Message string
}

type UniqueResult struct {
	Unique  bool
	Status  int
	Message string
}

type StatusResult struct {
	Status  int
	Message string
}

// DocumentStore is the contract of the document database. Implementations must
// be safe for concurrent use; handles are constructed once per process and
// reused for its whole lifetime.
type DocumentStore interface {
	Search(ctx context.Context, storageID string, options SearchOptions, lookups []LookupSpec) (*SearchResult, error)
	Get(ctx context.Context, storageID, id string, lookups []LookupSpec) (*ItemResult, error)
	Create(ctx context.Context, storageID string, doc interface{}) (*ItemResult, error)
	Update(ctx context.Context, storageID, id string, doc interface{}) (*ItemResult, error)
	Delete(ctx context.Context, storageID, id string) (*ItemResult, error)
	IsItemUnique(ctx context.Context, storageID string, conditions []Condition) (*UniqueResult, error)
	DeleteMany(ctx context.Context, storageID string, conditions []Condition) (*StatusResult, error)
	InsertMany(ctx context.Context, storageID string, docs []interface{}) (*SearchResult, error)
}

// SearchStore is the contract of the full-text search index.
type SearchStore interface {
	Search(ctx context.Context, storageID string, options SearchOptions) (*SearchResult, error)
}
