package testinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"rolegate/store"

	"github.com/google/uuid"
)

// FakeDocumentStore is an in-memory stand-in for the document store. It keeps
// one ordered document list per storage identifier and executes lookup specs
// the way the real store would, so relation-heavy reads can be tested without
// a live database.
type FakeDocumentStore struct {
	mutex       sync.Mutex
	Collections map[string][]map[string]interface{}

	// Err makes every operation fail, simulating a store internal error.
	Err error
}

func NewFakeDocumentStore() *FakeDocumentStore {
	return &FakeDocumentStore{Collections: map[string][]map[string]interface{}{}}
}

// Seed inserts a document as-is, keeping its provided _id.
func (f *FakeDocumentStore) Seed(storageID string, docs ...interface{}) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for _, doc := range docs {
		f.Collections[storageID] = append(f.Collections[storageID], toMap(doc))
	}
}

func (f *FakeDocumentStore) Search(ctx context.Context, storageID string, options store.SearchOptions, lookups []store.LookupSpec) (*store.SearchResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	matched := f.filter(storageID, options.Conditions, options.Word)
	total := len(matched)

	sortDocs(matched, options.Sort)
	if options.Size > 0 {
		matched = page(matched, options.From, options.Size)
	}

	items := make([]store.Source, 0, len(matched))
	for _, doc := range matched {
		items = append(items, toSource(f.applyLookups(doc, lookups), options.SourceInclude))
	}
	return &store.SearchResult{Items: items, TotalCount: total, Status: http.StatusOK}, nil
}

func (f *FakeDocumentStore) Get(ctx context.Context, storageID, id string, lookups []store.LookupSpec) (*store.ItemResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	for _, doc := range f.Collections[storageID] {
		if doc["_id"] == id {
			item := toSource(f.applyLookups(doc, lookups), nil)
			return &store.ItemResult{Item: &item, Status: http.StatusOK}, nil
		}
	}
	return &store.ItemResult{Status: http.StatusOK}, nil
}

func (f *FakeDocumentStore) Create(ctx context.Context, storageID string, doc interface{}) (*store.ItemResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	record := f.newRecord(doc)
	f.Collections[storageID] = append(f.Collections[storageID], record)
	item := toSource(record, nil)
	return &store.ItemResult{Item: &item, Status: http.StatusCreated}, nil
}

func (f *FakeDocumentStore) Update(ctx context.Context, storageID, id string, doc interface{}) (*store.ItemResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	changes := toMap(doc)
	delete(changes, "_id")
	for _, record := range f.Collections[storageID] {
		if record["_id"] == id {
			for key, value := range changes {
				record[key] = value
			}
			item := toSource(record, nil)
			return &store.ItemResult{Item: &item, Status: http.StatusOK}, nil
		}
	}
	return &store.ItemResult{Status: http.StatusNotFound}, nil
}

func (f *FakeDocumentStore) Delete(ctx context.Context, storageID, id string) (*store.ItemResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	docs := f.Collections[storageID]
	for i, record := range docs {
		if record["_id"] == id {
			f.Collections[storageID] = append(docs[:i:i], docs[i+1:]...)
			item := toSource(record, nil)
			return &store.ItemResult{Item: &item, Status: http.StatusOK}, nil
		}
	}
	return &store.ItemResult{Status: http.StatusNotFound}, nil
}

func (f *FakeDocumentStore) IsItemUnique(ctx context.Context, storageID string, conditions []store.Condition) (*store.UniqueResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return &store.UniqueResult{Unique: len(f.filter(storageID, conditions, "")) == 0, Status: http.StatusOK}, nil
}

func (f *FakeDocumentStore) DeleteMany(ctx context.Context, storageID string, conditions []store.Condition) (*store.StatusResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	kept := make([]map[string]interface{}, 0, len(f.Collections[storageID]))
	for _, doc := range f.Collections[storageID] {
		if !matchesAny(doc, conditions) {
			kept = append(kept, doc)
		}
	}
	f.Collections[storageID] = kept
	return &store.StatusResult{Status: http.StatusOK}, nil
}

func (f *FakeDocumentStore) InsertMany(ctx context.Context, storageID string, docs []interface{}) (*store.SearchResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	items := make([]store.Source, 0, len(docs))
	for _, doc := range docs {
		record := f.newRecord(doc)
		f.Collections[storageID] = append(f.Collections[storageID], record)
		items = append(items, toSource(record, nil))
	}
	return &store.SearchResult{Items: items, TotalCount: len(items), Status: http.StatusCreated}, nil
}

func (f *FakeDocumentStore) newRecord(doc interface{}) map[string]interface{} {
	record := toMap(doc)
	if _, found := record["_id"]; !found {
		record["_id"] = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	return record
}

func (f *FakeDocumentStore) filter(storageID string, conditions []store.Condition, word string) []map[string]interface{} {
	matched := []map[string]interface{}{}
	for _, doc := range f.Collections[storageID] {
		if !matchesAny(doc, conditions) {
			continue
		}
		if word != "" {
			name, _ := doc["name"].(string)
			if !strings.Contains(strings.ToLower(name), strings.ToLower(word)) {
				continue
			}
		}
		matched = append(matched, doc)
	}
	return matched
}

func (f *FakeDocumentStore) applyLookups(doc map[string]interface{}, lookups []store.LookupSpec) map[string]interface{} {
	if len(lookups) == 0 {
		return doc
	}
	joined := copyMap(doc)
	for _, lookup := range lookups {
		matches := []map[string]interface{}{}
		for _, foreign := range f.Collections[lookup.From] {
			if equalValues(foreign[lookup.ForeignField], doc[lookup.LocalField]) {
				matches = append(matches, copyMap(foreign))
			}
		}
		if lookup.Unwind {
			if len(matches) > 0 {
				joined[lookup.As] = matches[0]
			}
			continue
		}
		joined[lookup.As] = matches
	}
	return joined
}

// FakeSearchStore is an in-memory stand-in for the search index. Documents
// are raw JSON and returned verbatim, preserving their field order; only term
// filtering is executed. The last request is recorded for assertions.
type FakeSearchStore struct {
	mutex   sync.Mutex
	Indexes map[string][]string

	LastIndex   string
	LastOptions store.SearchOptions

	Err error
}

func NewFakeSearchStore() *FakeSearchStore {
	return &FakeSearchStore{Indexes: map[string][]string{}}
}

func (f *FakeSearchStore) Seed(storageID string, rawDocs ...string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.Indexes[storageID] = append(f.Indexes[storageID], rawDocs...)
}

func (f *FakeSearchStore) Search(ctx context.Context, storageID string, options store.SearchOptions) (*store.SearchResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.LastIndex = storageID
	f.LastOptions = options
	if f.Err != nil {
		return nil, f.Err
	}

	items := []store.Source{}
	for _, raw := range f.Indexes[storageID] {
		doc := map[string]interface{}{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, err
		}
		if matchesAny(doc, options.Conditions) {
			items = append(items, store.Source(raw))
		}
	}
	return &store.SearchResult{Items: items, TotalCount: len(items), Status: http.StatusOK}, nil
}

func toMap(doc interface{}) map[string]interface{} {
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	record := map[string]interface{}{}
	if err := json.Unmarshal(raw, &record); err != nil {
		panic(err)
	}
	return record
}

func toSource(doc map[string]interface{}, include []string) store.Source {
	projected := doc
	if len(include) > 0 {
		projected = map[string]interface{}{}
		for _, field := range include {
			if value, found := doc[field]; found {
				projected[field] = value
			}
		}
	}
	raw, err := json.Marshal(projected)
	if err != nil {
		panic(err)
	}
	return store.Source(raw)
}

func copyMap(doc map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		copied[key] = value
	}
	return copied
}

func matchesAny(doc map[string]interface{}, conditions []store.Condition) bool {
	if len(conditions) == 0 {
		return true
	}
	for _, condition := range conditions {
		matched := true
		for field, expected := range condition {
			if !equalValues(doc[field], expected) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func equalValues(a, b interface{}) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func sortDocs(docs []map[string]interface{}, sorts []store.Sort) {
	for i := len(sorts) - 1; i >= 0; i-- {
		s := sorts[i]
		sort.SliceStable(docs, func(x, y int) bool {
			left := fmt.Sprint(docs[x][s.Field])
			right := fmt.Sprint(docs[y][s.Field])
			if s.Order == "desc" {
				return left > right
			}
			return left < right
		})
	}
}

func page(docs []map[string]interface{}, from, size int) []map[string]interface{} {
	if from >= len(docs) {
		return []map[string]interface{}{}
	}
	end := from + size
	if end > len(docs) {
		end = len(docs)
	}
	return docs[from:end]
}
