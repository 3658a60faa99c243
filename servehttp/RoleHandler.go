package servehttp

import (
	"rolegate/access"
	"rolegate/common"
	"rolegate/domain"
	"rolegate/role"
	"rolegate/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterRoleHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	// group: "", version: v1, resource: roles
	g := r.Group("/v1/roles", middleWares...)

	handler := &roleHandler{}

	g.GET("/list-all", handler.handleListAll)
	g.GET("/paginate", handler.handlePaginate)
	g.GET("/get", handler.handleGet)
	g.GET("/module-access", handler.handleModuleAccess)
	g.POST("/create", handler.handleCreate)
	g.PUT("/update", handler.handleUpdate)
	g.DELETE("/delete", handler.handleDelete)
}

type roleHandler struct {
}

func (h *roleHandler) handleListAll(c *gin.Context) {
	resp := role.ListAllFunc(session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *roleHandler) handlePaginate(c *gin.Context) {
	query := domain.PageQuery{}
	_ = c.MustBindWith(&query, binding.Query)

	resp := role.PaginateFunc(&query, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *roleHandler) handleGet(c *gin.Context) {
	resp := role.GetFunc(c.Query("id"), session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *roleHandler) handleModuleAccess(c *gin.Context) {
	query := domain.ModuleAccessQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	resp := access.ResolveModuleAccessFunc(&query, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *roleHandler) handleCreate(c *gin.Context) {
	creation := domain.RoleCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	resp := role.CreateFunc(&creation, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *roleHandler) handleUpdate(c *gin.Context) {
	updating := domain.RoleUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	resp := role.UpdateFunc(c.Query("id"), &updating, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *roleHandler) handleDelete(c *gin.Context) {
	resp := role.DeleteFunc(c.Query("id"), session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}
