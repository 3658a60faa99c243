// Package access resolves the effective per module action set of a role: the
// role's stored grants merged with the module capability catalog. The merge
// takes each module's active catalog actions as the effective list and the
// matched permission contributes only its fullAccess flag; the permission's
// own stored actions are not intersected in. That is the shipped behavior and
// it is kept on purpose.
package access

import (
	"encoding/json"
	"net/http"
	"net/url"

	"rolegate/bizerror"
	"rolegate/domain"
	"rolegate/federation"
	"rolegate/persistence"
	"rolegate/session"
	"rolegate/store"

	"github.com/sirupsen/logrus"
)

// The catalog is fetched as one page. Catalogs are small; paging further was
// never needed.
const catalogPageSize = 500

var ResolveModuleAccessFunc = ResolveModuleAccess

// ResolveModuleAccess runs the three resolution steps in order: role with
// denormalized permissions, module catalog, consolidation. Each step requires
// the previous one to have succeeded; any failure, including malformed filter
// or field parameters, collapses into a single internal-error envelope with no
// partial results.
func ResolveModuleAccess(q *domain.ModuleAccessQuery, s *session.Session) *bizerror.Response {
	roleRepo := federation.NewRepository(federation.KindRoles, persistence.ActiveStoreBundle)
	roleResult := roleRepo.GetByID(s, q.ID, federation.RoleRelations(s.CompanyPrefix))
	if bizerror.ClassifyStoreStatus(roleResult.Status) == bizerror.OutcomeInternal {
		logError(s, roleResult.Message)
		return bizerror.ErrorResponse(roleResult.Message, roleResult.Status)
	}
	if roleResult.Item == nil {
		return bizerror.NotFound()
	}

	grants := struct {
		Permissions []domain.Permission `json:"permissions"`
	}{}
	if err := json.Unmarshal([]byte(*roleResult.Item), &grants); err != nil {
		logError(s, err)
		return bizerror.ErrorResponse(err.Error(), http.StatusInternalServerError)
	}

	options := store.SearchOptions{
		From: 0,
		Size: catalogPageSize,
		Sort: []store.Sort{{Field: "createdAt", Order: "asc"}},
	}
	if q.Fields != "" {
		fields, err := decodeFields(q.Fields)
		if err != nil {
			logError(s, err)
			return bizerror.ErrorResponse(err.Error(), http.StatusInternalServerError)
		}
		options.SourceInclude = fields
	}
	if q.Filters != "" {
		filters, err := decodeFilters(q.Filters)
		if err != nil {
			logError(s, err)
			return bizerror.ErrorResponse(err.Error(), http.StatusInternalServerError)
		}
		options.Conditions = filters
	}

	moduleRepo := federation.NewRepository(federation.KindModules, persistence.ActiveStoreBundle)
	catalog := moduleRepo.SearchIndex(s, options)
	if bizerror.ClassifyStoreStatus(catalog.Status) == bizerror.OutcomeInternal {
		logError(s, catalog.Message)
		return bizerror.ErrorResponse(catalog.Message, catalog.Status)
	}

	consolidated, err := consolidate(catalog.Items, grants.Permissions)
	if err != nil {
		logError(s, err)
		return bizerror.ErrorResponse(err.Error(), http.StatusInternalServerError)
	}
	return bizerror.Respond(consolidated, roleResult.Status)
}

// consolidate emits one effective-access record per catalog module, in catalog
// order. The raw view field is catalog metadata and is dropped from the
// output.
func consolidate(modules []store.Source, permissions []domain.Permission) ([]map[string]interface{}, error) {
	// last write wins; duplicates should not occur given the uniqueness
	// invariant
	permissionMap := make(map[string]domain.Permission, len(permissions))
	for _, p := range permissions {
		permissionMap[p.ModuleID] = p
	}

	consolidated := make([]map[string]interface{}, 0, len(modules))
	for _, module := range modules {
		view := struct {
			View struct {
				Actions catalogActions `json:"actions"`
			} `json:"view"`
		}{}
		if err := json.Unmarshal([]byte(module), &view); err != nil {
			return nil, err
		}

		doc := map[string]interface{}{}
		if err := json.Unmarshal([]byte(module), &doc); err != nil {
			return nil, err
		}
		delete(doc, "view")

		moduleID, _ := doc["_id"].(string)
		fullAccess := false
		if permission, found := permissionMap[moduleID]; found {
			fullAccess = permission.FullAccess
		}
		doc["fullAccess"] = fullAccess
		doc["actions"] = view.View.Actions.Active()
		consolidated = append(consolidated, doc)
	}
	return consolidated, nil
}

func decodeFields(raw string) ([]string, error) {
	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, err
	}
	var fields []string
	if err := json.Unmarshal([]byte(unescaped), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeFilters passes the decoded condition objects through verbatim; their
// exact matching semantics belong to the search store.
func decodeFilters(raw string) ([]store.Condition, error) {
	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, err
	}
	var filters []store.Condition
	if err := json.Unmarshal([]byte(unescaped), &filters); err != nil {
		return nil, err
	}
	return filters, nil
}

func logError(s *session.Session, message interface{}) {
	logrus.WithFields(logrus.Fields{"fn": "access.ResolveModuleAccess", "companyPrefix": s.CompanyPrefix}).Error(message)
}
