/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suparena/eventsmanager/datastore/ddb"
	"github.com/suparena/eventsmanager/datastore/mock"
	"github.com/suparena/eventsmanager/models"
)

// testEnv wires every typed store onto a single in-memory table, so
// cross-entity effects (shadow records, registrations) are observable
// the way they would be in the real single-table deployment.
type testEnv struct {
	api    *mock.API
	client *ddb.Client
	users  *ddb.DynamodbDataStore[models.User]
	emails *ddb.DynamodbDataStore[models.EmailRecord]
	events *ddb.DynamodbDataStore[models.Event]
	regs   *ddb.DynamodbDataStore[models.Registration]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	api := mock.New()
	client, err := ddb.NewClient(context.Background(), "test", "test", "us-east-1", "events-test", ddb.WithAPI(api))
	require.NoError(t, err)

	return &testEnv{
		api:    api,
		client: client,
		users:  ddb.NewDynamodbDataStore[models.User](client),
		emails: ddb.NewDynamodbDataStore[models.EmailRecord](client),
		events: ddb.NewDynamodbDataStore[models.Event](client),
		regs:   ddb.NewDynamodbDataStore[models.Registration](client),
	}
}

func (e *testEnv) userService() *Users {
	return NewUsers(e.client, e.users, e.emails, nil)
}

func (e *testEnv) eventService(opts ...EventsOption) *Events {
	return NewEvents(e.events, e.regs, nil, opts...)
}

func (e *testEnv) registrationService(opts ...RegistrationsOption) *Registrations {
	return NewRegistrations(e.events, e.regs, nil, opts...)
}
