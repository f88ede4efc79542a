package handler

import (
	"net/http"

	"Club_Portal/internal/middleware"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	events    *service.EventService
	attendees *service.AttendeeService
}

func NewEventHandler(events *service.EventService, attendees *service.AttendeeService) *EventHandler {
	return &EventHandler{events: events, attendees: attendees}
}

func (h *EventHandler) List(c *gin.Context) {
	p, err := pageFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.events.List(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) Get(c *gin.Context) {
	v, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.events.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req service.EventInput
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	v, err := h.events.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}

func (h *EventHandler) RSVP(c *gin.Context) {
	a, err := h.attendees.RSVP(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *EventHandler) CancelRSVP(c *gin.Context) {
	a, err := h.attendees.Cancel(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *EventHandler) CheckIn(c *gin.Context) {
	a, err := h.attendees.CheckIn(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), c.Param("accountId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *EventHandler) Attendees(c *gin.Context) {
	out, err := h.attendees.List(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendees": out})
}
