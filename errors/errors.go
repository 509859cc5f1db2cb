/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a write collides with a uniqueness
	// constraint (duplicate email, duplicate registration)
	ErrConflict = errors.New("uniqueness conflict")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrTransient is returned for store failures that are safe to retry
	// as a whole new operation with a fresh idempotency token
	ErrTransient = errors.New("transient store failure")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError represents a uniqueness violation. Field names the
// attribute that owns the conflict ("email", "user").
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("conflict on %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("conflict: %s", e.Message)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional write
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// TransactionConflictError reports a multi-item transaction cancelled by a
// failed per-item condition. ItemIndex is the position of the offending
// item in the submitted transaction.
type TransactionConflictError struct {
	ItemIndex int
}

func (e *TransactionConflictError) Error() string {
	return fmt.Sprintf("transaction cancelled: condition failed on item %d", e.ItemIndex)
}

func (e *TransactionConflictError) Is(target error) bool {
	return target == ErrConditionFailed
}

// TransientError wraps a store failure that may succeed on retry. The
// caller must resubmit the whole operation with a fresh idempotency token.
type TransientError struct {
	Operation string
	Err       error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure in %s: %v", e.Operation, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewConflictError creates a new ConflictError
func NewConflictError(field, message string) error {
	return &ConflictError{Field: field, Message: message}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewTransientError wraps err as a retryable store failure
func NewTransientError(operation string, err error) error {
	return &TransientError{Operation: operation, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsTransient checks if an error is a retryable store failure
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
