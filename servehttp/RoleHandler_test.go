package servehttp_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"rolegate/access"
	"rolegate/bizerror"
	"rolegate/domain"
	"rolegate/role"
	"rolegate/servehttp"
	"rolegate/session"
	"rolegate/testinfra"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("RoleHandler", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = gin.New()
		router.Use(bizerror.ErrorHandling())
		servehttp.RegisterRoleHandler(router)
	})
	AfterEach(func() {
		role.ListAllFunc = role.ListAll
		role.PaginateFunc = role.Paginate
		role.GetFunc = role.Get
		role.CreateFunc = role.Create
		role.UpdateFunc = role.Update
		role.DeleteFunc = role.Delete
		access.ResolveModuleAccessFunc = access.ResolveModuleAccess
	})

	Describe("handleListAll", func() {
		It("should serve the envelope with its own status code", func() {
			role.ListAllFunc = func(s *session.Session) *bizerror.Response {
				return bizerror.Respond([]string{}, http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodGet, "/v1/roles/list-all", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"result":[],"statusCode":200}`))
		})
	})

	Describe("handlePaginate", func() {
		It("should pass the page query through", func() {
			role.PaginateFunc = func(q *domain.PageQuery, s *session.Session) *bizerror.Response {
				Expect(*q).To(Equal(domain.PageQuery{From: 10, Size: 5, Word: "adm"}))
				return bizerror.RespondPage([]string{}, 37, http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodGet, "/v1/roles/paginate?from=10&size=5&word=adm", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"result":[],"totalCount":37,"statusCode":200}`))
		})
	})

	Describe("handleGet", func() {
		It("should pass the id through and keep not-found in the envelope", func() {
			role.GetFunc = func(id string, s *session.Session) *bizerror.Response {
				Expect(id).To(Equal("123"))
				return bizerror.NotFound()
			}
			req := httptest.NewRequest(http.MethodGet, "/v1/roles/get?id=123", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusNotFound))
			Expect(body).To(MatchJSON(`{"result":null,"statusCode":404}`))
		})
	})

	Describe("handleModuleAccess", func() {
		It("should require the id parameter", func() {
			req := httptest.NewRequest(http.MethodGet, "/v1/roles/module-access", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring("common.bad_param"))
		})

		It("should hand filters and fields to the resolution untouched", func() {
			access.ResolveModuleAccessFunc = func(q *domain.ModuleAccessQuery, s *session.Session) *bizerror.Response {
				Expect(q.ID).To(Equal("r1"))
				Expect(q.Filters).To(Equal(`%5B%7B%22category%22%3A%22finance%22%7D%5D`))
				return bizerror.Respond([]string{}, http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodGet,
				"/v1/roles/module-access?id=r1&filters=%255B%257B%2522category%2522%253A%2522finance%2522%257D%255D", nil)
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	Describe("handleCreate", func() {
		It("should serve a created role", func() {
			role.CreateFunc = func(creation *domain.RoleCreation, s *session.Session) *bizerror.Response {
				Expect(creation.Name).To(Equal("Manager"))
				return &bizerror.Response{ID: "100", Result: map[string]string{"_id": "100"}, StatusCode: http.StatusCreated}
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/roles/create",
				strings.NewReader(`{"name":"Manager","description":"managers"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusCreated))
			Expect(body).To(MatchJSON(`{"id":"100","result":{"_id":"100"},"statusCode":201}`))
		})

		It("should reject an invalid body", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/roles/create", strings.NewReader(`{"name":"Manager"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring("common.bad_param"))
		})

		It("should serve a conflict verdict unchanged", func() {
			role.CreateFunc = func(creation *domain.RoleCreation, s *session.Session) *bizerror.Response {
				return bizerror.Conflict("The role already exists")
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/roles/create",
				strings.NewReader(`{"name":"manager","description":"dup"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusConflict))
			Expect(body).To(MatchJSON(`{"result":"The role already exists","statusCode":409}`))
		})
	})

	Describe("handleUpdate", func() {
		It("should pass the id and changes through", func() {
			role.UpdateFunc = func(id string, updating *domain.RoleUpdating, s *session.Session) *bizerror.Response {
				Expect(id).To(Equal("100"))
				Expect(updating.Description).To(Equal("new"))
				return &bizerror.Response{ID: "100", Result: map[string]string{"_id": "100"}, StatusCode: http.StatusOK}
			}
			req := httptest.NewRequest(http.MethodPut, "/v1/roles/update?id=100",
				strings.NewReader(`{"description":"new"}`))
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	Describe("handleDelete", func() {
		It("should pass the id through", func() {
			role.DeleteFunc = func(id string, s *session.Session) *bizerror.Response {
				Expect(id).To(Equal("100"))
				return &bizerror.Response{ID: "100", Result: map[string]string{"_id": "100"}, StatusCode: http.StatusOK}
			}
			req := httptest.NewRequest(http.MethodDelete, "/v1/roles/delete?id=100", nil)
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
		})
	})
})
