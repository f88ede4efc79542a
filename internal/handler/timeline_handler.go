package handler

import (
	"net/http"

	"Club_Portal/internal/middleware"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type TimelineHandler struct {
	svc *service.TimelineService
}

func NewTimelineHandler(svc *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{svc: svc}
}

func (h *TimelineHandler) List(c *gin.Context) {
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

func (h *TimelineHandler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *TimelineHandler) Create(c *gin.Context) {
	var req service.TimelineInput
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

func (h *TimelineHandler) Update(c *gin.Context) {
	var req service.TimelineInput
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

func (h *TimelineHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
