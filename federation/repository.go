package federation

import (
	"net/http"
	"rolegate/persistence"
	"rolegate/session"
	"rolegate/store"
)

// Repository exposes the uniform operation set of one resource kind. Every
// call first resolves the physical storage identifier for the session's
// tenant, then dispatches to the document store; SearchIndex is the one
// operation routed to the search index instead (module catalog queries need
// its filter capability). Store statuses pass through uninterpreted and
// nothing is ever retried here.
type Repository struct {
	Kind   string
	Stores *persistence.StoreBundle
}

func NewRepository(kind string, stores *persistence.StoreBundle) *Repository {
	return &Repository{Kind: kind, Stores: stores}
}

func (r *Repository) Search(s *session.Session, options store.SearchOptions, lookups []store.LookupSpec) *store.SearchResult {
	result, err := r.Stores.DocumentStore().Search(s.Context, DocStorageID(r.Kind, s.CompanyPrefix), options, lookups)
	if err != nil {
		return &store.SearchResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

func (r *Repository) SearchIndex(s *session.Session, options store.SearchOptions) *store.SearchResult {
	result, err := r.Stores.SearchStore().Search(s.Context, SearchStorageID(r.Kind, s.CompanyPrefix), options)
	if err != nil {
		return &store.SearchResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

func (r *Repository) GetByID(s *session.Session, id string, lookups []store.LookupSpec) *store.ItemResult {
	result, err := r.Stores.DocumentStore().Get(s.Context, DocStorageID(r.Kind, s.CompanyPrefix), id, lookups)
	if err != nil {
		return &store.ItemResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

func (r *Repository) Create(s *session.Session, doc interface{}) *store.ItemResult {
	result, err := r.Stores.DocumentStore().Create(s.Context, DocStorageID(r.Kind, s.CompanyPrefix), doc)
	if err != nil {
		return &store.ItemResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

func (r *Repository) UpdateByID(s *session.Session, id string, doc interface{}) *store.ItemResult {
	result, err := r.Stores.DocumentStore().Update(s.Context, DocStorageID(r.Kind, s.CompanyPrefix), id, doc)
	if err != nil {
		return &store.ItemResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

func (r *Repository) DeleteByID(s *session.Session, id string) *store.ItemResult {
	result, err := r.Stores.DocumentStore().Delete(s.Context, DocStorageID(r.Kind, s.CompanyPrefix), id)
	if err != nil {
		return &store.ItemResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

func (r *Repository) IsUnique(s *session.Session, conditions []store.Condition) *store.UniqueResult {
	result, err := r.Stores.DocumentStore().IsItemUnique(s.Context, DocStorageID(r.Kind, s.CompanyPrefix), conditions)
	if err != nil {
		return &store.UniqueResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return result
}

// PermissionRepository adds the bulk grant replacement only the permission
// kind supports.
type PermissionRepository struct {
	Repository
}

func NewPermissionRepository(stores *persistence.StoreBundle) *PermissionRepository {
	return &PermissionRepository{Repository: Repository{Kind: KindPermissions, Stores: stores}}
}

// ReplaceAllForRole removes every permission of the role, then inserts the new
// set. The two store calls share no transaction: a failure after the delete
// leaves the role without permissions until the caller retries. Known
// availability gap, kept as designed.
func (r *PermissionRepository) ReplaceAllForRole(s *session.Session, roleID string, docs []interface{}) *store.SearchResult {
	storageID := DocStorageID(r.Kind, s.CompanyPrefix)

	deleted, err := r.Stores.DocumentStore().DeleteMany(s.Context, storageID, []store.Condition{{"roleId": roleID}})
	if err != nil {
		return &store.SearchResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	if deleted.Status == http.StatusInternalServerError {
		return &store.SearchResult{Status: deleted.Status, Message: deleted.Message}
	}

	inserted, err := r.Stores.DocumentStore().InsertMany(s.Context, storageID, docs)
	if err != nil {
		return &store.SearchResult{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return inserted
}
