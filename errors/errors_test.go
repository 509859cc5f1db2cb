/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestConflictError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "email",
			message:  "email already belongs to another user",
			expected: `conflict on "email": email already belongs to another user`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "duplicate item",
			expected: "conflict: duplicate item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConflictError(tt.field, tt.message)
			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}
			if !IsConflict(err) {
				t.Error("IsConflict should return true for ConflictError")
			}
			if IsNotFound(err) {
				t.Error("ConflictError should not match ErrNotFound")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("id", "must not be empty")

	expected := `validation failed for field "id": must not be empty`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsValidationError(err) {
		t.Error("IsValidationError should return true for ValidationError")
	}
}

func TestConditionFailedError(t *testing.T) {
	err := NewConditionFailedError("put", "attribute_not_exists(PK)")

	expected := "condition check failed for put operation: attribute_not_exists(PK)"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsConditionFailed(err) {
		t.Error("IsConditionFailed should return true for ConditionFailedError")
	}
}

func TestTransactionConflictError(t *testing.T) {
	err := &TransactionConflictError{ItemIndex: 1}

	if !IsConditionFailed(err) {
		t.Error("TransactionConflictError should match ErrConditionFailed")
	}

	var tce *TransactionConflictError
	if !errors.As(err, &tce) || tce.ItemIndex != 1 {
		t.Errorf("expected item index 1, got %#v", tce)
	}
}

func TestTransientError(t *testing.T) {
	cause := fmt.Errorf("throughput exceeded")
	err := NewTransientError("transact write", cause)

	if !IsTransient(err) {
		t.Error("IsTransient should return true for TransientError")
	}

	if !errors.Is(err, cause) {
		t.Error("TransientError should unwrap to its cause")
	}

	if IsConflict(err) {
		t.Error("TransientError should not match ErrConflict")
	}
}
