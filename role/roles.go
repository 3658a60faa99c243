// Package role holds the tenant scoped role operations. Every operation
// resolves its result into the uniform envelope; no error leaves the package.
package role

import (
	"strings"

	"rolegate/bizerror"
	"rolegate/domain"
	"rolegate/federation"
	"rolegate/persistence"
	"rolegate/session"
	"rolegate/store"

	"github.com/sirupsen/logrus"
)

var (
	ListAllFunc  = ListAll
	PaginateFunc = Paginate
	GetFunc      = Get
	CreateFunc   = Create
	UpdateFunc   = Update
	DeleteFunc   = Delete
)

func repository() *federation.Repository {
	return federation.NewRepository(federation.KindRoles, persistence.ActiveStoreBundle)
}

func ListAll(s *session.Session) *bizerror.Response {
	options := store.SearchOptions{Sort: []store.Sort{{Field: "createdAt", Order: "asc"}}}

	r := repository().Search(s, options, nil)
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "role.ListAll", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	return bizerror.Respond(r.Items, r.Status)
}

func Paginate(q *domain.PageQuery, s *session.Session) *bizerror.Response {
	options := store.SearchOptions{
		From: q.From,
		Size: q.Size,
		Word: q.Word,
		Sort: []store.Sort{{Field: "createdAt", Order: "asc"}},
	}

	r := repository().Search(s, options, nil)
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "role.Paginate", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	return bizerror.RespondPage(r.Items, r.TotalCount, r.Status)
}

// Get returns the role with its permissions denormalized. An empty result is
// not-found no matter what the store reported, unless it reported a failure.
func Get(id string, s *session.Session) *bizerror.Response {
	r := repository().GetByID(s, id, federation.RoleRelations(s.CompanyPrefix))
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "role.Get", r.Message)
		return bizerror.ErrorResponse(r.Message, r.Status)
	}
	if r.Item == nil {
		return bizerror.NotFound()
	}
	return bizerror.Respond(r.Item, r.Status)
}

// Create refuses a role whose normalized name already exists in the tenant.
// The check and the insert are two store calls with nothing between them;
// simultaneous creates for one name can slip through.
func Create(creation *domain.RoleCreation, s *session.Session) *bizerror.Response {
	creation.Name = strings.ToLower(creation.Name)

	options := store.SearchOptions{
		SourceInclude: []string{"_id", "name"},
		Conditions:    []store.Condition{{"name": creation.Name}},
	}
	existing := repository().Search(s, options, nil)
	if bizerror.ClassifyStoreStatus(existing.Status) == bizerror.OutcomeInternal {
		logError(s, "role.Create", existing.Message)
		return bizerror.ErrorResponse(existing.Message, existing.Status)
	}
	if len(existing.Items) > 0 {
		return bizerror.Conflict("The role already exists")
	}

	created := repository().Create(s, creation)
	if bizerror.ClassifyStoreStatus(created.Status) == bizerror.OutcomeInternal {
		logError(s, "role.Create", created.Message)
		return bizerror.ErrorResponse(created.Message, created.Status)
	}
	return &bizerror.Response{ID: created.Item.DocumentID(), Result: created.Item, StatusCode: created.Status}
}

func Update(id string, updating *domain.RoleUpdating, s *session.Session) *bizerror.Response {
	r := repository().UpdateByID(s, id, updating)
	if bizerror.ClassifyStoreStatus(r.Status) == bizerror.OutcomeInternal {
		logError(s, "role.Update", r.Message)
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
		logError(s, "role.Delete", r.Message)
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
