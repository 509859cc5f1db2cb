/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	goerrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/eventsmanager/errors"
	"github.com/suparena/eventsmanager/storagemodels"
)

const cancellationConditionFailed = "ConditionalCheckFailed"

// TransactWrite commits the given items atomically: either every put and
// delete is applied or none are. The input's idempotency token is passed
// through as the client request token, so a retried submission must carry
// a brand-new token rather than the handle of a failed attempt.
//
// A transaction cancelled by a failed per-item condition is reported as a
// TransactionConflictError carrying the index of the offending item; any
// other failure is transient and safe to retry as a whole new transaction.
func (c *Client) TransactWrite(ctx context.Context, input *storagemodels.TransactWriteInput) error {
	if len(input.Items) == 0 {
		return errors.NewValidationError("items", "transaction must contain at least one item")
	}
	if input.IdempotencyToken == "" {
		return errors.NewValidationError("idempotency_token", "must not be empty")
	}

	items := make([]types.TransactWriteItem, 0, len(input.Items))
	for _, item := range input.Items {
		switch {
		case item.Put != nil:
			items = append(items, types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(c.tableName),
					Item:                item.Put.Item,
					ConditionExpression: item.Put.Condition,
				},
			})
		case item.Delete != nil:
			items = append(items, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(c.tableName),
					Key:       item.Delete.Key,
				},
			})
		default:
			return errors.NewValidationError("items", "transaction item must be a put or a delete")
		}
	}

	_, err := c.api.TransactWriteItems(ctx, &sdk.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(input.IdempotencyToken),
	})
	if err == nil {
		return nil
	}

	var cancelled *types.TransactionCanceledException
	if goerrors.As(err, &cancelled) {
		for i, reason := range cancelled.CancellationReasons {
			if aws.ToString(reason.Code) == cancellationConditionFailed {
				c.logger.Debug("transaction cancelled by condition",
					zap.Int("item", i),
				)
				return &errors.TransactionConflictError{ItemIndex: i}
			}
		}
		// Cancelled for capacity, conflict with another transaction, or
		// an unknown reason: retryable with a fresh token.
		return errors.NewTransientError("transact write", err)
	}

	return errors.NewTransientError("transact write", err)
}
