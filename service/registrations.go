/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package service

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/datastore/ddb"
	"github.com/suparena/eventsmanager/errors"
	"github.com/suparena/eventsmanager/models"
)

// RegistrationsOption configures the registration service.
type RegistrationsOption func(*Registrations)

// WithClock overrides the time source used to stamp registrations.
func WithClock(now func() time.Time) RegistrationsOption {
	return func(r *Registrations) {
		r.now = now
	}
}

// Registrations implements event sign-up. A registration is keyed by the
// (event, user) pair, so the conditional put on that composite key is the
// whole double-registration guard.
type Registrations struct {
	events        *ddb.DynamodbDataStore[models.Event]
	registrations *ddb.DynamodbDataStore[models.Registration]
	now           func() time.Time
	logger        *zap.Logger
}

// NewRegistrations constructs the registration service.
func NewRegistrations(events *ddb.DynamodbDataStore[models.Event], registrations *ddb.DynamodbDataStore[models.Registration], logger *zap.Logger, opts ...RegistrationsOption) *Registrations {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registrations{
		events:        events,
		registrations: registrations,
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register signs a user up for an event. The event must exist; the write
// fails with a conflict if the user is already registered. When at is nil
// the registration is stamped with the current time.
func (s *Registrations) Register(ctx context.Context, eventID, userID string, at *strfmt.DateTime) (*models.Registration, error) {
	if eventID == "" {
		return nil, errors.NewValidationError("event_id", "must not be empty")
	}
	if userID == "" {
		return nil, errors.NewValidationError("user_id", "must not be empty")
	}

	if _, err := s.events.GetOne(ctx, eventID); err != nil {
		return nil, err
	}

	when := strfmt.DateTime(s.now().UTC())
	if at != nil {
		when = *at
	}

	registration := models.NewRegistration(eventID, userID, when)
	if err := s.registrations.PutIfAbsent(ctx, registration); err != nil {
		if errors.IsConditionFailed(err) {
			return nil, errors.NewConflictError("user", "user already registered for this event")
		}
		return nil, err
	}

	s.logger.Info("registration created",
		zap.String("event_id", eventID),
		zap.String("user_id", userID))
	return &registration, nil
}

// Get returns the registration for the (event, user) pair.
func (s *Registrations) Get(ctx context.Context, eventID, userID string) (*models.Registration, error) {
	eventKey, userKey, err := registrationKeys(eventID, userID)
	if err != nil {
		return nil, err
	}
	return s.registrations.GetByKey(ctx, eventKey, userKey)
}

// Delete removes the registration for the (event, user) pair. Deleting a
// registration that does not exist is an error, so a later Register for
// the same pair succeeds cleanly.
func (s *Registrations) Delete(ctx context.Context, eventID, userID string) error {
	eventKey, userKey, err := registrationKeys(eventID, userID)
	if err != nil {
		return err
	}
	if _, err := s.registrations.GetByKey(ctx, eventKey, userKey); err != nil {
		return err
	}
	if err := s.registrations.DeleteByKey(ctx, eventKey, userKey); err != nil {
		return err
	}

	s.logger.Info("registration deleted",
		zap.String("event_id", eventID),
		zap.String("user_id", userID))
	return nil
}

// ListByEvent returns the registrations for an event, ordered by user key.
func (s *Registrations) ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	eventKey, err := models.EventKey(eventID)
	if err != nil {
		return nil, err
	}

	return s.registrations.QueryPartition(eventKey).
		WithSortKeyPrefix(models.UserKeyPrefix).
		WithEntityType(models.TypeRegistration).
		Execute(ctx)
}

// ListByUser returns the registrations held by a user across events,
// using the GSI1 reverse projection.
func (s *Registrations) ListByUser(ctx context.Context, userID string) ([]models.Registration, error) {
	userKey, err := models.UserKey(userID)
	if err != nil {
		return nil, err
	}

	return s.registrations.QueryIndex(ddb.IndexGSI1, userKey).
		WithSortKeyPrefix(models.RegistrationKeyPrefix).
		WithEntityType(models.TypeRegistration).
		Execute(ctx)
}

func registrationKeys(eventID, userID string) (string, string, error) {
	eventKey, err := models.EventKey(eventID)
	if err != nil {
		return "", "", err
	}
	userKey, err := models.UserKey(userID)
	if err != nil {
		return "", "", err
	}
	return eventKey, userKey, nil
}
