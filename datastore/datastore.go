/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/eventsmanager/storagemodels"
)

// DataStore is the generic entity-store contract over the shared table.
// Implementations must treat every call as potentially long-latency I/O
// and must surface storage failures via the errors package taxonomy.
type DataStore[T any] interface {
	// GetOne retrieves the entity whose keys derive from the given
	// business identifier (via the type's index map). Returns a
	// not-found error when no item exists.
	GetOne(ctx context.Context, key string) (*T, error)

	// GetByKey retrieves an entity by explicit partition and sort key.
	// Needed for composite-keyed entities such as registrations.
	GetByKey(ctx context.Context, pk, sk string) (*T, error)

	// Put writes the entity with overwrite semantics.
	Put(ctx context.Context, entity T) error

	// PutIfAbsent writes the entity only when no item with its key pair
	// exists yet; a collision yields a condition-failed error.
	PutIfAbsent(ctx context.Context, entity T) error

	// Query returns all items sharing a partition value on the primary
	// key space or a secondary index, decoded by EntityType.
	Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)

	// Stream is the lazy form of Query: results are delivered page by
	// page over a channel until the partition is exhausted or ctx ends.
	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	// Delete removes the entity addressed by the given business identifier.
	Delete(ctx context.Context, key string) error

	// DeleteByKey removes an item by explicit partition and sort key.
	DeleteByKey(ctx context.Context, pk, sk string) error
}

// TransactWriter commits a set of writes atomically: either every item in
// the input is applied or none are.
type TransactWriter interface {
	TransactWrite(ctx context.Context, input *storagemodels.TransactWriteInput) error
}
