// Package permission holds the tenant scoped permission operations, including
// the (roleId, moduleId) uniqueness guard and the bulk grant replacement.
package permission

import (
	"rolegate/bizerror"
	"rolegate/domain"
	"rolegate/federation"
	"rolegate/persistence"
	"rolegate/session"
	"rolegate/store"

	"github.com/sirupsen/logrus"
)

var (
	ListAllFunc     = ListAll
	PaginateFunc    = Paginate
	GetFunc         = Get
	CreateFunc      = Create
	CreateMultiFunc = CreateMulti
	UpdateFunc      = Update
	DeleteFunc      = Delete
)

var listProjection = []string{"_id", "roleId", "moduleId", "createdAt"}

func repository() *federation.PermissionRepository {
	return federation.NewPermissionRepository(persistence.ActiveStoreBundle)
}

func ListAll(s *session.Session) *bizerror.Response {
	options := store.SearchOptions{
		SourceInclude: listProjection,
		Sort:          []store.Sort{{Field: "createdAt", Order: "asc"}},
	}

	r := repository().Search(s, options, federation.PermissionRelations(s.CompanyPrefix))
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.ListAll", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	return bizerror.Respond(r.Items, r.Status)
}

func Paginate(q *domain.PageQuery, s *session.Session) *bizerror.Response {
	options := store.SearchOptions{
		From:          q.From,
		Size:          q.Size,
		Word:          q.Word,
		Sort:          []store.Sort{{Field: "createdAt", Order: "asc"}},
		SourceInclude: listProjection,
	}

	r := repository().Search(s, options, federation.PermissionRelations(s.CompanyPrefix))
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.Paginate", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	return bizerror.RespondPage(r.Items, r.TotalCount, r.Status)
}

func Get(id string, s *session.Session) *bizerror.Response {
	r := repository().GetByID(s, id, federation.PermissionRelations(s.CompanyPrefix))
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.Get", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	if r.Item == nil {
		return bizerror.NotFound()
	}
	return bizerror.Respond(r.Item, r.Status)
}

// Create inserts a single permission after the uniqueness guard: at most one
// permission may exist per (roleId, moduleId) pair in a tenant. The guard and
// the insert are separate store calls; concurrent creates for the same pair
// can both pass. The caller supplied actions list is stored verbatim, even
// when fullAccess is set (CreateMulti behaves differently, deliberately so).
func Create(creation *domain.PermissionCreation, s *session.Session) *bizerror.Response {
	options := store.SearchOptions{
		SourceInclude: []string{"_id", "name"},
		Conditions: []store.Condition{{
			"moduleId": creation.ModuleID,
			"roleId":   creation.RoleID,
		}},
	}
	existing := repository().Search(s, options, nil)
	if bizerror.ClassifyStoreStatus(existing.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.Create", existing.Message)
		return bizerror.ErrorResponse(existing.Message, existing.Status)
	}
	if len(existing.Items) > 0 {
		return bizerror.Conflict("The permission already exists")
	}

	created := repository().Create(s, creation)
	if bizerror.ClassifyStoreStatus(created.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.Create", created.Message)
		return bizerror.ErrorResponse(created.Message, created.Status)
	}
	return &bizerror.Response{ID: created.Item.DocumentID(), Result: created.Item, StatusCode: created.Status}
}

// CreateMulti replaces every grant of the role with the supplied set. An
// entry's actions survive only when that entry grants full access; otherwise
// they are zeroed before the insert. Uniqueness needs no guard here, the
// delete-then-insert transition enforces it structurally.
func CreateMulti(m *domain.MultiPermissionCreation, s *session.Session) *bizerror.Response {
	docs := make([]interface{}, 0, len(m.Permissions))
	for _, p := range m.Permissions {
		entry := p
		if !entry.FullAccess {
			entry.Actions = []string{}
		}
		docs = append(docs, &entry)
	}

	r := repository().ReplaceAllForRole(s, m.RoleID, docs)
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.CreateMulti", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	return bizerror.Respond(r.Items, r.Status)
}

func Update(id string, updating *domain.PermissionUpdating, s *session.Session) *bizerror.Response {
	r := repository().UpdateByID(s, id, updating)
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.Update", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	resp := bizerror.Response{Result: r.Item, StatusCode: r.Status}
	if r.Item != nil {
		resp.ID = r.Item.DocumentID()
	}
	return &resp
}

func Delete(id string, s *session.Session) *bizerror.Response {
	r := repository().DeleteByID(s, id)
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "permission.Delete", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	resp := bizerror.Response{Result: r.Item, StatusCode: r.Status}
	if r.Item != nil {
		resp.ID = r.Item.DocumentID()
	}
	return &resp
}

func logError(s *session.Session, fn string, message interface{}) {
	logrus.WithFields(logrus.Fields{"fn": fn, "companyPrefix": s.CompanyPrefix}).Error(message)
}
