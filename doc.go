/*
Package eventsmanager is an event-management backend built on a single
DynamoDB table. Every entity kind shares the table, discriminated by an
EntityType attribute, with key attributes projected from the entity's
index map at write time.

The layout gives each access pattern one query:

  - Users and events live under self-keyed partitions (USER#id, EVENT#id)
  - Email ownership is a shadow record (EMAIL#address) kept consistent
    with its user through atomic transactions
  - Registrations key on the (EVENT#, USER#) pair, so the table itself
    rejects double sign-up
  - GSI1 answers "events created by" and "registrations held by" a user
  - GSI2 answers "events in a city", sorted by zip code

Package layout:

	models         entity types, key codec, index-map registrations
	registry       index-map and type registries
	storagemodels  query, stream and transaction inputs
	datastore      storage contracts
	datastore/ddb  the DynamoDB implementation
	datastore/mock in-memory DynamoDB API fake for tests
	service        domain services and consistency guards
	api            gin REST surface
	config         environment and index-layout configuration
*/
package eventsmanager
