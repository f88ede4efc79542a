package handler

import (
	"net/http"

	"Club_Portal/internal/middleware"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	svc *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) List(c *gin.Context) {
	p, err := pageFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), middleware.IdentityFrom(c), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BlogHandler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req service.BlogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.svc.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req service.BlogInput
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.svc.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
