package servehttp

import (
	"rolegate/common"
	"rolegate/domain"
	"rolegate/permission"
	"rolegate/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterPermissionHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	// group: "", version: v1, resource: permissions
	g := r.Group("/v1/permissions", middleWares...)

	handler := &permissionHandler{}

	g.GET("/list-all", handler.handleListAll)
	g.GET("/paginate", handler.handlePaginate)
	g.GET("/get", handler.handleGet)
	g.POST("/create", handler.handleCreate)
	g.POST("/multi-create", handler.handleCreateMulti)
	g.PUT("/update", handler.handleUpdate)
	g.DELETE("/delete", handler.handleDelete)
}

type permissionHandler struct {
}

func (h *permissionHandler) handleListAll(c *gin.Context) {
	resp := permission.ListAllFunc(session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *permissionHandler) handlePaginate(c *gin.Context) {
	query := domain.PageQuery{}
	_ = c.MustBindWith(&query, binding.Query)

	resp := permission.PaginateFunc(&query, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *permissionHandler) handleGet(c *gin.Context) {
	resp := permission.GetFunc(c.Query("id"), session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *permissionHandler) handleCreate(c *gin.Context) {
	creation := domain.PermissionCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	resp := permission.CreateFunc(&creation, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *permissionHandler) handleCreateMulti(c *gin.Context) {
	creation := domain.MultiPermissionCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	resp := permission.CreateMultiFunc(&creation, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *permissionHandler) handleUpdate(c *gin.Context) {
	updating := domain.PermissionUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}

	resp := permission.UpdateFunc(c.Query("id"), &updating, session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}

func (h *permissionHandler) handleDelete(c *gin.Context) {
	resp := permission.DeleteFunc(c.Query("id"), session.ExtractSessionFromGinContext(c))
	c.JSON(resp.StatusCode, resp)
}
