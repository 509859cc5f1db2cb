/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/eventsmanager/errors"
)

func eventInput(createdBy, city, zip, title string) EventInput {
	return EventInput{
		Title:       title,
		Description: "a description",
		Date:        strfmt.DateTime(time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)),
		City:        city,
		ZipCode:     zip,
		CreatedBy:   createdBy,
	}
}

func TestEventsCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	event, err := svc.Create(ctx, eventInput("creator-1", "Berlin", "10115", "Launch"))
	require.NoError(t, err)
	require.NotEmpty(t, event.ID)

	got, err := svc.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Title)
	assert.Equal(t, "Berlin", got.City)
	assert.Equal(t, "creator-1", got.CreatedBy)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestEventsUpdateKeepsIdentity(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	event, err := svc.Create(ctx, eventInput("creator-1", "Berlin", "10115", "Launch"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, event.ID, eventInput("creator-1", "Hamburg", "20095", "Launch v2"))
	require.NoError(t, err)
	assert.Equal(t, event.ID, updated.ID)
	assert.Equal(t, "Hamburg", updated.City)

	// The city projection follows the update.
	berlin, err := svc.ListByCity(ctx, "Berlin", "")
	require.NoError(t, err)
	assert.Empty(t, berlin)
	hamburg, err := svc.ListByCity(ctx, "Hamburg", "")
	require.NoError(t, err)
	require.Len(t, hamburg, 1)
	assert.Equal(t, event.ID, hamburg[0].ID)
}

func TestEventsListByCreator(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	var mine []string
	for _, title := range []string{"One", "Two", "Three"} {
		event, err := svc.Create(ctx, eventInput("creator-a", "Berlin", "10115", title))
		require.NoError(t, err)
		mine = append(mine, event.ID)
	}
	_, err := svc.Create(ctx, eventInput("creator-b", "Berlin", "10115", "Theirs"))
	require.NoError(t, err)

	events, err := svc.ListByCreator(ctx, "creator-a")
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Identifiers are lexicographically ordered by creation time, and so
	// is the listing.
	for i, event := range events {
		assert.Equal(t, mine[i], event.ID)
		assert.Equal(t, "creator-a", event.CreatedBy)
	}
}

func TestEventsListByCity(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	_, err := svc.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Mitte"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, eventInput("creator-a", "Berlin", "10243", "Friedrichshain"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, eventInput("creator-a", "Hamburg", "20095", "Elsewhere"))
	require.NoError(t, err)

	all, err := svc.ListByCity(ctx, "Berlin", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	narrowed, err := svc.ListByCity(ctx, "Berlin", "10243")
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	assert.Equal(t, "Friedrichshain", narrowed[0].Title)

	_, err = svc.ListByCity(ctx, "", "10115")
	assert.True(t, errors.IsValidationError(err))
}

func TestEventsDeleteWithoutCascade(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService()
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)
	_, err = regs.Register(ctx, event.ID, "user-1", nil)
	require.NoError(t, err)

	require.NoError(t, events.Delete(ctx, event.ID))
	_, err = events.Get(ctx, event.ID)
	assert.True(t, errors.IsNotFound(err))

	// Registrations survive the plain delete.
	left, err := regs.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestEventsDeleteWithCascade(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService(WithRegistrationCascade())
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)
	other, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Kept"))
	require.NoError(t, err)

	for _, userID := range []string{"user-1", "user-2"} {
		_, err = regs.Register(ctx, event.ID, userID, nil)
		require.NoError(t, err)
	}
	_, err = regs.Register(ctx, other.ID, "user-1", nil)
	require.NoError(t, err)

	require.NoError(t, events.Delete(ctx, event.ID))

	gone, err := regs.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	// Registrations for other events are untouched.
	kept, err := regs.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, other.ID, kept[0].EventID)
}

func TestEventsCascadeDeleteErrorStopsStream(t *testing.T) {
	env := newTestEnv(t)
	events := env.eventService(WithRegistrationCascade())
	regs := env.registrationService()
	ctx := context.Background()

	event, err := events.Create(ctx, eventInput("creator-a", "Berlin", "10115", "Launch"))
	require.NoError(t, err)

	// More registrations than the stream buffer holds, so an abandoned
	// stream worker would block on its channel instead of finishing.
	for i := 0; i < 150; i++ {
		_, err = regs.Register(ctx, event.ID, fmt.Sprintf("user-%03d", i), nil)
		require.NoError(t, err)
	}

	env.api.WithDeleteError(goerrors.New("throttled"))
	before := runtime.NumGoroutine()

	err = events.Delete(ctx, event.ID)
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))

	// The failed cascade must not leave the stream worker behind.
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestEventsDeleteMissing(t *testing.T) {
	env := newTestEnv(t)
	err := env.eventService().Delete(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestEventsValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	in := eventInput("creator-a", "Berlin", "10115", "Launch")
	in.Title = ""
	_, err := svc.Create(ctx, in)
	assert.True(t, errors.IsValidationError(err))

	in = eventInput("creator-a", "Berlin", "10115", "Launch")
	in.Description = ""
	_, err = svc.Create(ctx, in)
	assert.True(t, errors.IsValidationError(err))

	in = eventInput("", "Berlin", "10115", "Launch")
	_, err = svc.Create(ctx, in)
	assert.True(t, errors.IsValidationError(err))
}
