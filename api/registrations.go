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

// RegistrationRequest is the body for POST /events/:id/registrations.
type RegistrationRequest struct {
	UserID           string           `json:"user" binding:"required"`
	RegistrationTime *strfmt.DateTime `json:"registration_time"`
}

// RegistrationsHandler handles registration HTTP endpoints.
type RegistrationsHandler struct {
	registrations *service.Registrations
	logger        *zap.Logger
}

// NewRegistrationsHandler creates a registrations handler.
func NewRegistrationsHandler(registrations *service.Registrations, logger *zap.Logger) *RegistrationsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationsHandler{registrations: registrations, logger: logger}
}

// Register handles POST /events/:id/registrations.
func (h *RegistrationsHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	registration, err := h.registrations.Register(c.Request.Context(), c.Param("id"), req.UserID, req.RegistrationTime)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, registration)
}

// Get handles GET /events/:id/registrations/:user_id.
func (h *RegistrationsHandler) Get(c *gin.Context) {
	registration, err := h.registrations.Get(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, registration)
}

// Delete handles DELETE /events/:id/registrations/:user_id.
func (h *RegistrationsHandler) Delete(c *gin.Context) {
	if err := h.registrations.Delete(c.Request.Context(), c.Param("id"), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}
	NoContent(c)
}

// ListByEvent handles GET /events/:id/registrations.
func (h *RegistrationsHandler) ListByEvent(c *gin.Context) {
	registrations, err := h.registrations.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, registrations)
}
