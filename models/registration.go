/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Now returns the current time as a storage timestamp.
func Now() strfmt.DateTime {
	return strfmt.DateTime(time.Now().UTC())
}

// Registration records that a user attends an event. Its primary key is
// the composite (EVENT#<event-id>, USER#<user-id>), so the table itself
// guarantees at most one registration per user per event.
type Registration struct {
	ID               string          `dynamodbav:"ID" json:"ID"`
	EntityType       string          `dynamodbav:"EntityType" json:"-"`
	UserID           string          `dynamodbav:"UserID" json:"user"`
	EventID          string          `dynamodbav:"EventID" json:"event"`
	RegistrationTime strfmt.DateTime `dynamodbav:"RegistrationTime" json:"registration_time"`
}

// NewRegistration constructs a Registration with a fresh identifier.
func NewRegistration(eventID, userID string, at strfmt.DateTime) Registration {
	return Registration{
		ID:               NewID(),
		EntityType:       TypeRegistration,
		UserID:           userID,
		EventID:          eventID,
		RegistrationTime: at,
	}
}
