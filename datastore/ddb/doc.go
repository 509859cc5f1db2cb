/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package ddb implements the DataStore interface against DynamoDB.

The package supports:
  - Single-table design with macro-based key expansion (e.g., "USER#{ID}")
  - Insert-only writes via conditional puts
  - Atomic multi-item transactions with client request tokens and
    per-item cancellation-reason classification
  - Partition queries against the primary key space and both secondary
    indexes through one builder
  - Enhanced streaming with retry logic

One long-lived Client owns the connection and is shared by every typed
datastore:

	client, err := ddb.NewClient(ctx, accessKey, secretKey, region, table)
	users := ddb.NewDynamodbDataStore[models.User](client)

Keys are never supplied by callers: each entity type registers an index
map whose macros are expanded from entity fields at write time, and from
the business identifier on reads:

	indexMap := map[string]string{
	    "PK": "USER#{ID}",
	    "SK": "USER#{ID}",
	}

Queries on shared partitions decode each item through the EntityType
registry, so a mixed partition yields concrete typed values. Supply
ddb.WithAPI to run against a custom or in-memory DynamoDB implementation.
*/
package ddb
