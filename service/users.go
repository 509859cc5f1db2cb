/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package service

import (
	"context"
	goerrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/datastore/ddb"
	"github.com/suparena/eventsmanager/errors"
	"github.com/suparena/eventsmanager/models"
	"github.com/suparena/eventsmanager/storagemodels"
)

// UserInput is the validated payload for creating or updating a user.
type UserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (in UserInput) validate() error {
	if in.Email == "" {
		return errors.NewValidationError("email", "must not be empty")
	}
	if in.Password == "" {
		return errors.NewValidationError("password", "must not be empty")
	}
	return nil
}

// Users implements the user lifecycle. Email uniqueness is maintained by
// a shadow EMAIL# record kept in lockstep with the user item through
// atomic transactions; the shadow is the sole arbiter of ownership.
type Users struct {
	client *ddb.Client
	users  *ddb.DynamodbDataStore[models.User]
	emails *ddb.DynamodbDataStore[models.EmailRecord]
	logger *zap.Logger
}

// NewUsers constructs the user service on top of a shared table client.
func NewUsers(client *ddb.Client, users *ddb.DynamodbDataStore[models.User], emails *ddb.DynamodbDataStore[models.EmailRecord], logger *zap.Logger) *Users {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Users{
		client: client,
		users:  users,
		emails: emails,
		logger: logger,
	}
}

// Create registers a new user. The email must not be claimed by any other
// user; a claimed address yields a conflict on "email".
func (s *Users) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	user := models.NewUser(in.Email, in.Password, in.FirstName, in.LastName)
	if err := s.upsert(ctx, user, nil); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("id", user.ID))
	return &user, nil
}

// Get returns the user with the given identifier.
func (s *Users) Get(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "must not be empty")
	}
	return s.users.GetOne(ctx, id)
}

// Update replaces the user's domain fields; the identity is immutable.
// Changing the email atomically moves ownership from the old shadow
// record to a new one, provided the new address is unclaimed.
func (s *Users) Update(ctx context.Context, id string, in UserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	previous, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:         previous.ID,
		EntityType: models.TypeUser,
		Email:      in.Email,
		Password:   in.Password,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
	}
	if err := s.upsert(ctx, user, previous); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.String("id", user.ID))
	return &user, nil
}

// Delete removes the user and its email shadow record in one atomic
// transaction.
func (s *Users) Delete(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	userKey, err := models.UserKey(user.ID)
	if err != nil {
		return err
	}
	emailKey, err := models.EmailKey(user.Email)
	if err != nil {
		return err
	}

	input := &storagemodels.TransactWriteInput{
		IdempotencyToken: uuid.NewString(),
		Items: []storagemodels.TransactItem{
			{Delete: &storagemodels.TransactDelete{Key: ddb.KeyFromStrings(userKey, userKey)}},
			{Delete: &storagemodels.TransactDelete{Key: ddb.KeyFromStrings(emailKey, emailKey)}},
		},
	}
	if err := s.client.TransactWrite(ctx, input); err != nil {
		if errors.IsTransient(err) {
			return err
		}
		return errors.NewTransientError("delete user", err)
	}

	s.logger.Info("user deleted", zap.String("id", user.ID))
	return nil
}

// upsert commits the user item together with its email shadow bookkeeping
// in one transaction. The shadow insert carries a key-absent precondition;
// only a failure of that precondition is attributed to the email, every
// other failure is transient. Each attempt uses a fresh idempotency token.
func (s *Users) upsert(ctx context.Context, user models.User, previous *models.User) error {
	userItem, err := ddb.MarshalEntity(user)
	if err != nil {
		return err
	}

	items := []storagemodels.TransactItem{
		{Put: &storagemodels.TransactPut{Item: userItem}},
	}

	emailItemIndex := -1
	if previous == nil || previous.Email != user.Email {
		record := models.NewEmailRecord(user.Email, user.ID)
		recordItem, err := ddb.MarshalEntity(record)
		if err != nil {
			return err
		}
		emailItemIndex = len(items)
		items = append(items, storagemodels.TransactItem{
			Put: &storagemodels.TransactPut{
				Item:      recordItem,
				Condition: aws.String(ddb.ConditionKeyAbsent),
			},
		})
	}
	if previous != nil && previous.Email != user.Email {
		oldKey, err := models.EmailKey(previous.Email)
		if err != nil {
			return err
		}
		items = append(items, storagemodels.TransactItem{
			Delete: &storagemodels.TransactDelete{Key: ddb.KeyFromStrings(oldKey, oldKey)},
		})
	}

	input := &storagemodels.TransactWriteInput{
		Items:            items,
		IdempotencyToken: uuid.NewString(),
	}
	if err := s.client.TransactWrite(ctx, input); err != nil {
		var conflict *errors.TransactionConflictError
		if goerrors.As(err, &conflict) && conflict.ItemIndex == emailItemIndex {
			return errors.NewConflictError("email", "email already belongs to another user")
		}
		if errors.IsTransient(err) {
			return err
		}
		return errors.NewTransientError("upsert user", err)
	}
	return nil
}
