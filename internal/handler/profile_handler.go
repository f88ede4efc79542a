package handler

import (
	"net/http"

	"Club_Portal/internal/middleware"
	"Club_Portal/internal/model"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles    *service.ProfileService
	connections *service.ConnectionService
}

func NewProfileHandler(profiles *service.ProfileService, connections *service.ConnectionService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, connections: connections}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	v, err := h.profiles.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("identifier"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var req service.ProfileInput
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.profiles.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req service.ProfileInput
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.profiles.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("username"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ProfileHandler) Connections(c *gin.Context) {
	out, err := h.connections.List(c.Request.Context(), middleware.IdentityFrom(c), model.ConnectionStatus(c.Query("status")))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connections": out})
}

func (h *ProfileHandler) Connect(c *gin.Context) {
	conn, err := h.connections.Request(c.Request.Context(), middleware.IdentityFrom(c), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, conn)
}

func (h *ProfileHandler) Accept(c *gin.Context) {
	conn, err := h.connections.Accept(c.Request.Context(), middleware.IdentityFrom(c), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *ProfileHandler) Block(c *gin.Context) {
	conn, err := h.connections.Block(c.Request.Context(), middleware.IdentityFrom(c), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *ProfileHandler) Disconnect(c *gin.Context) {
	if err := h.connections.Remove(c.Request.Context(), middleware.IdentityFrom(c), c.Param("userId")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
