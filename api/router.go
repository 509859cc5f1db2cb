/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package api exposes the event-management REST surface on gin, mapping
// the storage error taxonomy onto HTTP statuses.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/service"
)

// Services groups the domain services the router needs.
type Services struct {
	Users         *service.Users
	Events        *service.Events
	Registrations *service.Registrations
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svcs Services, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	usersHandler := NewUsersHandler(svcs.Users, svcs.Events, svcs.Registrations, logger)
	eventsHandler := NewEventsHandler(svcs.Events, logger)
	registrationsHandler := NewRegistrationsHandler(svcs.Registrations, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Logger(logger))

	router.GET("/health", func(c *gin.Context) { OK(c, gin.H{"status": "ok"}) })

	router.POST("/users", usersHandler.Create)
	router.GET("/users/:id", usersHandler.Get)
	router.PUT("/users/:id", usersHandler.Update)
	router.DELETE("/users/:id", usersHandler.Delete)
	router.GET("/users/:id/events", usersHandler.ListEvents)
	router.GET("/users/:id/registrations", usersHandler.ListRegistrations)

	router.POST("/events", eventsHandler.Create)
	router.GET("/events", eventsHandler.List)
	router.GET("/events/:id", eventsHandler.Get)
	router.PUT("/events/:id", eventsHandler.Update)
	router.DELETE("/events/:id", eventsHandler.Delete)

	router.POST("/events/:id/registrations", registrationsHandler.Register)
	router.GET("/events/:id/registrations", registrationsHandler.ListByEvent)
	router.GET("/events/:id/registrations/:user_id", registrationsHandler.Get)
	router.DELETE("/events/:id/registrations/:user_id", registrationsHandler.Delete)

	return router
}
