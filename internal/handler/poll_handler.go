package handler

import (
	"net/http"

	"Club_Portal/internal/middleware"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	svc *service.PollService
}

type VoteReq struct {
	OptionID string `json:"option_id" binding:"required"`
}

func NewPollHandler(svc *service.PollService) *PollHandler {
	return &PollHandler{svc: svc}
}

func (h *PollHandler) List(c *gin.Context) {
	p, err := pageFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PollHandler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *PollHandler) Create(c *gin.Context) {
	var req service.PollInput
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

// Vote inserts or replaces the caller's vote.
func (h *PollHandler) Vote(c *gin.Context) {
	var req VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.svc.Vote(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req.OptionID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *PollHandler) Close(c *gin.Context) {
	v, err := h.svc.Close(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *PollHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
