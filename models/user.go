/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

// User is a registered account. Password is opaque and write-only; it is
// stored but never serialized back to callers.
type User struct {
	ID         string `dynamodbav:"ID" json:"ID"`
	EntityType string `dynamodbav:"EntityType" json:"-"`
	Email      string `dynamodbav:"Email" json:"email"`
	Password   string `dynamodbav:"Password" json:"-"`
	FirstName  string `dynamodbav:"FirstName,omitempty" json:"first_name"`
	LastName   string `dynamodbav:"LastName,omitempty" json:"last_name"`
}

// NewUser constructs a User with a fresh identifier.
func NewUser(email, password, firstName, lastName string) User {
	return User{
		ID:         NewID(),
		EntityType: TypeUser,
		Email:      email,
		Password:   password,
		FirstName:  firstName,
		LastName:   lastName,
	}
}

// EmailRecord is the uniqueness shadow for a claimed email address. It is
// not a domain entity and is never exposed through the API; its only job
// is to make a second claim on the same address collide.
type EmailRecord struct {
	EntityType string `dynamodbav:"EntityType" json:"-"`
	Email      string `dynamodbav:"Email" json:"email"`
	UserID     string `dynamodbav:"UserID" json:"user_id"`
}

// NewEmailRecord constructs the shadow record binding email to userID.
func NewEmailRecord(email, userID string) EmailRecord {
	return EmailRecord{
		EntityType: TypeEmail,
		Email:      email,
		UserID:     userID,
	}
}
