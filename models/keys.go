/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/suparena/eventsmanager/errors"
)

// Key prefixes. Each entity kind owns a distinct prefix so keys are
// collision-free across kinds.
const (
	UserKeyPrefix         = "USER#"
	EventKeyPrefix        = "EVENT#"
	EmailKeyPrefix        = "EMAIL#"
	RegistrationKeyPrefix = "REGISTRATION#"
)

// EntityType discriminator values.
const (
	TypeUser         = "User"
	TypeEvent        = "Event"
	TypeRegistration = "Registration"
	TypeEmail        = "Email"
)

func prepareKey(prefix, id string) (string, error) {
	if id == "" {
		return "", errors.NewValidationError("id", "must not be empty")
	}
	return prefix + id, nil
}

// UserKey returns the storage key USER#<id> for a user identifier.
func UserKey(id string) (string, error) { return prepareKey(UserKeyPrefix, id) }

// EventKey returns the storage key EVENT#<id> for an event identifier.
func EventKey(id string) (string, error) { return prepareKey(EventKeyPrefix, id) }

// EmailKey returns the shadow-record key EMAIL#<address>. The address is
// used exactly as given; no case normalization is applied.
func EmailKey(email string) (string, error) {
	if email == "" {
		return "", errors.NewValidationError("email", "must not be empty")
	}
	return EmailKeyPrefix + email, nil
}

// RegistrationRef returns REGISTRATION#<event-id>, the GSI1 sort key that
// groups a user's registrations.
func RegistrationRef(eventID string) (string, error) {
	return prepareKey(RegistrationKeyPrefix, eventID)
}
