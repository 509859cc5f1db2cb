/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package service

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/eventsmanager/errors"
)

func TestRegistrationsRegister(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	regs := env.registrationService(WithClock(func() time.Time { return now }))

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)

	registration, err := regs.Register(ctx, event.ID, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, event.ID, registration.EventID)
	assert.Equal(t, "user-1", registration.UserID)
	assert.Equal(t, now, time.Time(registration.RegistrationTime))

	got, err := regs.Get(ctx, event.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, registration.ID, got.ID)
}

func TestRegistrationsExplicitTimestamp(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)

	at := strfmt.DateTime(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))
	registration, err := regs.Register(ctx, event.ID, "user-1", &at)
	require.NoError(t, err)
	assert.Equal(t, time.Time(at), time.Time(registration.RegistrationTime))
}

func TestRegistrationsDuplicateConflict(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)

	_, err = regs.Register(ctx, event.ID, "user-1", nil)
	require.NoError(t, err)

	_, err = regs.Register(ctx, event.ID, "user-1", nil)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	var conflict *errors.ConflictError
	require.True(t, goerrors.As(err, &conflict))
	assert.Equal(t, "user", conflict.Field)

	// Same user on a different event is fine.
	other, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Other"))
	require.NoError(t, err)
	_, err = regs.Register(ctx, other.ID, "user-1", nil)
	require.NoError(t, err)
}

func TestRegistrationsUnknownEvent(t *testing.T) {
	env := newTestEnv(t)
	regs := env.registrationService()
	ctx := context.Background()

	before := env.api.Len()
	_, err := regs.Register(ctx, "missing", "user-1", nil)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, before, env.api.Len())
}

func TestRegistrationsDeleteAndReRegister(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)
	_, err = regs.Register(ctx, event.ID, "user-1", nil)
	require.NoError(t, err)

	require.NoError(t, regs.Delete(ctx, event.ID, "user-1"))
	_, err = regs.Get(ctx, event.ID, "user-1")
	assert.True(t, errors.IsNotFound(err))

	// The composite key is free again.
	_, err = regs.Register(ctx, event.ID, "user-1", nil)
	require.NoError(t, err)
}

func TestRegistrationsDeleteMissing(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)

	err = regs.Delete(ctx, event.ID, "never-registered")
	assert.True(t, errors.IsNotFound(err))
}

func TestRegistrationsListByEvent(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)
	other, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Other"))
	require.NoError(t, err)

	for _, userID := range []string{"user-b", "user-a", "user-c"} {
		_, err = regs.Register(ctx, event.ID, userID, nil)
		require.NoError(t, err)
	}
	_, err = regs.Register(ctx, other.ID, "user-z", nil)
	require.NoError(t, err)

	listed, err := regs.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	// Ordered by user key within the event partition.
	assert.Equal(t, "user-a", listed[0].UserID)
	assert.Equal(t, "user-b", listed[1].UserID)
	assert.Equal(t, "user-c", listed[2].UserID)
}

func TestRegistrationsListByUser(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	var eventIDs []string
	for _, title := range []string{"One", "Two"} {
		event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", title))
		require.NoError(t, err)
		eventIDs = append(eventIDs, event.ID)
		_, err = regs.Register(ctx, event.ID, "user-1", nil)
		require.NoError(t, err)
	}
	_, err := regs.Register(ctx, eventIDs[0], "user-2", nil)
	require.NoError(t, err)

	listed, err := regs.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for i, registration := range listed {
		assert.Equal(t, eventIDs[i], registration.EventID)
		assert.Equal(t, "user-1", registration.UserID)
	}
}

func TestRegistrationsValidation(t *testing.T) {
	env := newTestEnv(t)
	regs := env.registrationService()
	ctx := context.Background()

	_, err := regs.Register(ctx, "", "user-1", nil)
	assert.True(t, errors.IsValidationError(err))
	_, err = regs.Register(ctx, "event-1", "", nil)
	assert.True(t, errors.IsValidationError(err))
}
