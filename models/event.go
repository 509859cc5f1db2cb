/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"
)

// Event is a scheduled happening created by a user. CreatedBy holds the
// creator's user identifier and feeds the GSI1 projection; City and
// ZipCode feed GSI2.
type Event struct {
	ID          string          `dynamodbav:"ID" json:"ID"`
	EntityType  string          `dynamodbav:"EntityType" json:"-"`
	Title       string          `dynamodbav:"Title" json:"title"`
	Description string          `dynamodbav:"Description" json:"description"`
	Date        strfmt.DateTime `dynamodbav:"Date" json:"date"`
	City        string          `dynamodbav:"City" json:"city"`
	ZipCode     string          `dynamodbav:"ZipCode" json:"zip_code"`
	CreatedBy   string          `dynamodbav:"CreatedBy" json:"created_by"`
}

// NewEvent constructs an Event with a fresh identifier.
func NewEvent(title, description string, date strfmt.DateTime, city, zipCode, createdBy string) Event {
	return Event{
		ID:          NewID(),
		EntityType:  TypeEvent,
		Title:       title,
		Description: description,
		Date:        date,
		City:        city,
		ZipCode:     zipCode,
		CreatedBy:   createdBy,
	}
}
