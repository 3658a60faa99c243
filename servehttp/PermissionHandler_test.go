package servehttp_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"rolegate/bizerror"
	"rolegate/domain"
	"rolegate/permission"
	"rolegate/servehttp"
	"rolegate/session"
	"rolegate/testinfra"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PermissionHandler", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = gin.New()
		router.Use(bizerror.ErrorHandling())
		servehttp.RegisterPermissionHandler(router)
	})
	AfterEach(func() {
		permission.ListAllFunc = permission.ListAll
		permission.PaginateFunc = permission.Paginate
		permission.GetFunc = permission.Get
		permission.CreateFunc = permission.Create
		permission.CreateMultiFunc = permission.CreateMulti
		permission.UpdateFunc = permission.Update
		permission.DeleteFunc = permission.Delete
	})

	Describe("handleCreate", func() {
		It("should serve a created permission", func() {
			permission.CreateFunc = func(creation *domain.PermissionCreation, s *session.Session) *bizerror.Response {
				Expect(creation.RoleID).To(Equal("r1"))
				Expect(creation.ModuleID).To(Equal("m1"))
				Expect(creation.Actions).To(Equal([]string{"read"}))
				return &bizerror.Response{ID: "p1", Result: map[string]string{"_id": "p1"}, StatusCode: http.StatusCreated}
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/permissions/create",
				strings.NewReader(`{"roleId":"r1","moduleId":"m1","actions":["read"]}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusCreated))
			Expect(body).To(MatchJSON(`{"id":"p1","result":{"_id":"p1"},"statusCode":201}`))
		})

		It("should reject a grant without actions", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/permissions/create",
				strings.NewReader(`{"roleId":"r1","moduleId":"m1"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring("common.bad_param"))
		})

		It("should serve a conflict verdict unchanged", func() {
			permission.CreateFunc = func(creation *domain.PermissionCreation, s *session.Session) *bizerror.Response {
				return bizerror.Conflict("The permission already exists")
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/permissions/create",
				strings.NewReader(`{"roleId":"r1","moduleId":"m1","actions":[]}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusConflict))
			Expect(body).To(MatchJSON(`{"result":"The permission already exists","statusCode":409}`))
		})
	})

	Describe("handleCreateMulti", func() {
		It("should hand the whole replacement set to the service", func() {
			permission.CreateMultiFunc = func(m *domain.MultiPermissionCreation, s *session.Session) *bizerror.Response {
				Expect(m.RoleID).To(Equal("r1"))
				Expect(len(m.Permissions)).To(Equal(2))
				return bizerror.Respond([]string{}, http.StatusCreated)
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/permissions/multi-create",
				strings.NewReader(`{"roleId":"r1","permissions":[
					{"roleId":"r1","moduleId":"m1","fullAccess":true,"actions":["read"]},
					{"roleId":"r1","moduleId":"m2","actions":["read"]}]}`))
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusCreated))
		})

		It("should reject an entry failing validation", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/permissions/multi-create",
				strings.NewReader(`{"roleId":"r1","permissions":[{"roleId":"r1"}]}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring("common.bad_param"))
		})
	})

	Describe("handleListAll", func() {
		It("should serve the envelope with its own status code", func() {
			permission.ListAllFunc = func(s *session.Session) *bizerror.Response {
				return bizerror.Respond([]string{}, http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodGet, "/v1/permissions/list-all", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"result":[],"statusCode":200}`))
		})
	})

	Describe("handlePaginate", func() {
		It("should pass the page query through", func() {
			permission.PaginateFunc = func(q *domain.PageQuery, s *session.Session) *bizerror.Response {
				Expect(*q).To(Equal(domain.PageQuery{From: 0, Size: 20}))
				return bizerror.RespondPage([]string{}, 3, http.StatusOK)
			}
			req := httptest.NewRequest(http.MethodGet, "/v1/permissions/paginate?size=20", nil)
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	Describe("handleUpdate", func() {
		It("should pass the partial change through", func() {
			permission.UpdateFunc = func(id string, updating *domain.PermissionUpdating, s *session.Session) *bizerror.Response {
				Expect(id).To(Equal("p1"))
				Expect(updating.FullAccess).NotTo(BeNil())
				Expect(*updating.FullAccess).To(BeTrue())
				return &bizerror.Response{ID: "p1", Result: map[string]string{"_id": "p1"}, StatusCode: http.StatusOK}
			}
			req := httptest.NewRequest(http.MethodPut, "/v1/permissions/update?id=p1",
				strings.NewReader(`{"fullAccess":true}`))
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	Describe("handleDelete", func() {
		It("should pass the id through", func() {
			permission.DeleteFunc = func(id string, s *session.Session) *bizerror.Response {
				Expect(id).To(Equal("p1"))
				return &bizerror.Response{ID: "p1", Result: map[string]string{"_id": "p1"}, StatusCode: http.StatusOK}
			}
			req := httptest.NewRequest(http.MethodDelete, "/v1/permissions/delete?id=p1", nil)
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
		})
	})
})
