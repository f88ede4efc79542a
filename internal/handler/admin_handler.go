package handler

import (
	"net/http"

	"Club_Portal/internal/middleware"
	"Club_Portal/internal/model"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin *service.AdminService
	blogs *service.BlogService
	perms *service.PermissionService
}

type ChangeRoleReq struct {
	Role string `json:"role" binding:"required,oneof=admin president secretary member"`
}

type ActivateReq struct {
	IsActive *bool `json:"is_active"`
}

type PermissionsReq struct {
	Permissions []string `json:"permissions" binding:"required"`
}

func NewAdminHandler(admin *service.AdminService, blogs *service.BlogService, perms *service.PermissionService) *AdminHandler {
	return &AdminHandler{admin: admin, blogs: blogs, perms: perms}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	p, err := pageFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.admin.ListUsers(c.Request.Context(), middleware.IdentityFrom(c), model.Role(c.Query("role")), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	acct, err := h.admin.ChangeRole(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), model.Role(req.Role))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, service.NewAccountView(acct))
}

// Activate sets is_active; an empty body activates.
func (h *AdminHandler) Activate(c *gin.Context) {
	var req ActivateReq
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	acct, err := h.admin.SetActive(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), active)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, service.NewAccountView(acct))
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.admin.DeleteAccount(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}

func (h *AdminHandler) ApproveBlog(c *gin.Context) {
	blog, err := h.blogs.Approve(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.perms.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

func (h *AdminHandler) GetRole(c *gin.Context) {
	role, err := h.perms.Get(c.Request.Context(), middleware.IdentityFrom(c), model.Role(c.Param("role")))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *AdminHandler) ReplaceRole(c *gin.Context) {
	var req PermissionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	role, err := h.perms.Replace(c.Request.Context(), middleware.IdentityFrom(c), model.Role(c.Param("role")), req.Permissions)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, role)
}
