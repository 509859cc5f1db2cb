/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/service"
)

// EventRequest is the body for POST /events and PUT /events/:id.
type EventRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Date        strfmt.DateTime `json:"date" binding:"required"`
	City        string          `json:"city" binding:"required"`
	ZipCode     string          `json:"zip_code" binding:"required"`
	CreatedBy   string          `json:"created_by" binding:"required"`
}

func (r EventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		City:        r.City,
		ZipCode:     r.ZipCode,
		CreatedBy:   r.CreatedBy,
	}
}

// EventsHandler handles event HTTP endpoints.
type EventsHandler struct {
	events *service.Events
	logger *zap.Logger
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(events *service.Events, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{events: events, logger: logger}
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	event, err := h.events.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, event)
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, event)
}

// List handles GET /events?city=...&zip_code=... The city is required;
// the zip code narrows the listing.
func (h *EventsHandler) List(c *gin.Context) {
	events, err := h.events.ListByCity(c.Request.Context(), c.Query("city"), c.Query("zip_code"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, events)
}

// Update handles PUT /events/:id.
func (h *EventsHandler) Update(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	event, err := h.events.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, event)
}

// Delete handles DELETE /events/:id.
func (h *EventsHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	NoContent(c)
}
