/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DynamoDB API
// surface the ddb package uses. Injected via ddb.WithAPI, it lets tests
// drive the real datastore code paths (key collisions, conditional
// writes, index queries, multi-item transactions) without a table.
package mock
