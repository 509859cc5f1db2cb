/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/service"
)

// UserRequest is the body for POST /users and PUT /users/:id.
type UserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r UserRequest) toInput() service.UserInput {
	return service.UserInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// UsersHandler handles user HTTP endpoints.
type UsersHandler struct {
	users         *service.Users
	events        *service.Events
	registrations *service.Registrations
	logger        *zap.Logger
}

// NewUsersHandler creates a users handler. The event and registration
// services back the per-user listing endpoints.
func NewUsersHandler(users *service.Users, events *service.Events, registrations *service.Registrations, logger *zap.Logger) *UsersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{users: users, events: events, registrations: registrations, logger: logger}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, user)
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, user)
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, user)
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	NoContent(c)
}

// ListEvents handles GET /users/:id/events.
func (h *UsersHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListByCreator(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, events)
}

// ListRegistrations handles GET /users/:id/registrations.
func (h *UsersHandler) ListRegistrations(c *gin.Context) {
	registrations, err := h.registrations.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	OK(c, registrations)
}
