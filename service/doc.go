/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package service implements the domain operations of the events manager:
// user, event, and registration lifecycles plus the cross-entity list
// queries. Each service is stateless; isolation is delegated entirely to
// the storage layer's conditional writes and multi-item transactions.
//
// Uniqueness is enforced in two ways. Email addresses are guarded by a
// shadow EMAIL# record written in the same atomic transaction as the user
// item, since the store has no cross-item unique constraint. Registrations
// need no transaction: their primary key is the composite
// (EVENT#<event-id>, USER#<user-id>), so a conditional single-item write
// collides by construction.
//
// Services translate store-level failures into the errors package
// taxonomy: missing items become not-found, failed uniqueness
// preconditions become conflicts naming the owning field, and everything
// else is transient and safe to retry as a whole new operation.
package service
