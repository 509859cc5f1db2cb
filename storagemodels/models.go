/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryParams defines parameters for a partition-scoped query against the
// primary key space or one of the secondary indexes.
// Used for both regular queries and streaming queries.
type QueryParams struct {
	// TableName is the table being queried.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is set when querying a secondary index.
	IndexName *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order.
	// If false, traversal is in descending order.
	ScanIndexForward *bool
}

// TransactPut writes an already-marshalled item, optionally guarded by a
// condition expression on the target item's current state.
type TransactPut struct {
	Item      map[string]types.AttributeValue
	Condition *string
}

// TransactDelete removes the item with the given primary key.
type TransactDelete struct {
	Key map[string]types.AttributeValue
}

// TransactItem is one operation in an atomic multi-item write. Exactly one
// of Put or Delete must be set.
type TransactItem struct {
	Put    *TransactPut
	Delete *TransactDelete
}

// TransactWriteInput is an atomic multi-item write: either every item is
// applied or none are. IdempotencyToken lets the store deduplicate a
// retried submission; callers must mint a fresh token for every new
// attempt and never reuse one from a failed attempt.
type TransactWriteInput struct {
	Items            []TransactItem
	IdempotencyToken string
}
