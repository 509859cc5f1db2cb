/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package service

import (
	"context"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/datastore/ddb"
	"github.com/suparena/eventsmanager/errors"
	"github.com/suparena/eventsmanager/models"
)

// EventInput is the validated payload for creating or updating an event.
type EventInput struct {
	Title       string
	Description string
	Date        strfmt.DateTime
	City        string
	ZipCode     string
	CreatedBy   string
}

func (in EventInput) validate() error {
	switch {
	case in.Title == "":
		return errors.NewValidationError("title", "must not be empty")
	case in.Description == "":
		return errors.NewValidationError("description", "must not be empty")
	case in.City == "":
		return errors.NewValidationError("city", "must not be empty")
	case in.ZipCode == "":
		return errors.NewValidationError("zip_code", "must not be empty")
	case in.CreatedBy == "":
		return errors.NewValidationError("created_by", "must not be empty")
	}
	return nil
}

// EventsOption configures the event service.
type EventsOption func(*Events)

// WithRegistrationCascade makes event deletion delete the event's
// registrations as well. Off by default: orphaned registrations then
// remain queryable by user, which mirrors the historical behavior.
func WithRegistrationCascade() EventsOption {
	return func(e *Events) {
		e.cascade = true
	}
}

// Events implements the event lifecycle and the two reverse lookups
// (by creator via GSI1, by city/zip via GSI2).
type Events struct {
	events        *ddb.DynamodbDataStore[models.Event]
	registrations *ddb.DynamodbDataStore[models.Registration]
	cascade       bool
	logger        *zap.Logger
}

// NewEvents constructs the event service.
func NewEvents(events *ddb.DynamodbDataStore[models.Event], registrations *ddb.DynamodbDataStore[models.Registration], logger *zap.Logger, opts ...EventsOption) *Events {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Events{
		events:        events,
		registrations: registrations,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create stores a new event with its index projections.
func (s *Events) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	event := models.NewEvent(in.Title, in.Description, in.Date, in.City, in.ZipCode, in.CreatedBy)
	if err := s.events.Put(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event created", zap.String("id", event.ID))
	return &event, nil
}

// Get returns the event with the given identifier.
func (s *Events) Get(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "must not be empty")
	}
	return s.events.GetOne(ctx, id)
}

// Update replaces the event's domain fields; the identity is immutable.
// Index projections are recomputed from the new field values.
func (s *Events) Update(ctx context.Context, id string, in EventInput) (*models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	previous, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		ID:          previous.ID,
		EntityType:  models.TypeEvent,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		City:        in.City,
		ZipCode:     in.ZipCode,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.events.Put(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event updated", zap.String("id", event.ID))
	return &event, nil
}

// Delete removes the event. With the cascade option enabled, the event's
// registrations are deleted first, streamed page by page.
func (s *Events) Delete(ctx context.Context, id string) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.cascade {
		if err := s.deleteRegistrations(ctx, event.ID); err != nil {
			return err
		}
	}

	if err := s.events.Delete(ctx, event.ID); err != nil {
		return err
	}

	s.logger.Info("event deleted", zap.String("id", event.ID), zap.Bool("cascade", s.cascade))
	return nil
}

func (s *Events) deleteRegistrations(ctx context.Context, eventID string) error {
	eventKey, err := models.EventKey(eventID)
	if err != nil {
		return err
	}

	// Cancelling the stream on early return stops its worker goroutine;
	// otherwise it would block sending into an abandoned channel.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream := s.registrations.QueryPartition(eventKey).
		WithSortKeyPrefix(models.UserKeyPrefix).
		WithEntityType(models.TypeRegistration).
		Stream(ctx)

	for result := range stream {
		if result.Error != nil {
			return errors.NewTransientError("cascade delete", result.Error)
		}
		userKey, err := models.UserKey(result.Item.UserID)
		if err != nil {
			return err
		}
		if err := s.registrations.DeleteByKey(ctx, eventKey, userKey); err != nil {
			return err
		}
	}
	return nil
}

// ListByCreator returns the events created by the given user, ordered by
// event key.
func (s *Events) ListByCreator(ctx context.Context, userID string) ([]models.Event, error) {
	userKey, err := models.UserKey(userID)
	if err != nil {
		return nil, err
	}

	return s.events.QueryIndex(ddb.IndexGSI1, userKey).
		WithSortKeyPrefix(models.EventKeyPrefix).
		WithEntityType(models.TypeEvent).
		Execute(ctx)
}

// ListByCity returns the events in a city, optionally narrowed to a zip
// code, ordered by zip code.
func (s *Events) ListByCity(ctx context.Context, city, zipCode string) ([]models.Event, error) {
	if city == "" {
		return nil, errors.NewValidationError("city", "must not be empty")
	}

	query := s.events.QueryIndex(ddb.IndexGSI2, city).
		WithEntityType(models.TypeEvent)
	if zipCode != "" {
		query = query.WithSortKey(zipCode)
	}
	return query.Execute(ctx)
}
