/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package errors defines the failure taxonomy shared by the datastore and
// service layers: not-found, uniqueness conflict, invalid input, failed
// conditional write, and transient (retryable) store failure. Typed errors
// carry context and match their sentinel via errors.Is.
package errors
