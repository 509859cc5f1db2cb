/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/eventsmanager/storagemodels"
)

// QueryBuilder builds partition queries against the primary key space or a
// named secondary index through one interface. Results order by the
// queried index's sort key.
type QueryBuilder[T any] struct {
	store      *DynamodbDataStore[T]
	indexName  string // empty means the primary key space
	pkValue    string
	skValue    string
	skOperator string // "=" or "begins_with"
	entityType string
	limit      *int32
	forward    *bool
}

// QueryPartition starts a query against the primary key space.
func (d *DynamodbDataStore[T]) QueryPartition(pkValue string) *QueryBuilder[T] {
	return &QueryBuilder[T]{store: d, pkValue: pkValue}
}

// QueryIndex starts a query against the named secondary index.
func (d *DynamodbDataStore[T]) QueryIndex(indexName, pkValue string) *QueryBuilder[T] {
	return &QueryBuilder[T]{store: d, indexName: indexName, pkValue: pkValue}
}

// WithSortKey constrains the sort key to an exact value.
func (q *QueryBuilder[T]) WithSortKey(value string) *QueryBuilder[T] {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix constrains the sort key to a prefix.
func (q *QueryBuilder[T]) WithSortKeyPrefix(prefix string) *QueryBuilder[T] {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithEntityType filters results on the EntityType discriminator. Queries
// over shared partitions must set this to avoid cross-entity leakage.
func (q *QueryBuilder[T]) WithEntityType(entityType string) *QueryBuilder[T] {
	q.entityType = entityType
	return q
}

// WithLimit sets the per-page item limit.
func (q *QueryBuilder[T]) WithLimit(limit int32) *QueryBuilder[T] {
	q.limit = aws.Int32(limit)
	return q
}

// Descending returns results in reverse sort-key order.
func (q *QueryBuilder[T]) Descending() *QueryBuilder[T] {
	q.forward = aws.Bool(false)
	return q
}

// Build constructs the final query parameters.
func (q *QueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	if q.pkValue == "" {
		return nil, fmt.Errorf("partition key value is required")
	}

	pkAttr, skAttr := "PK", "SK"
	var indexName *string
	if q.indexName != "" {
		cfg, ok := q.store.client.GSIConfig(q.indexName)
		if !ok {
			return nil, fmt.Errorf("unknown secondary index %q", q.indexName)
		}
		pkAttr, skAttr = cfg.PartitionKeyName, cfg.SortKeyName
		indexName = aws.String(cfg.IndexName)
	}

	values := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: q.pkValue},
	}
	conditions := []string{fmt.Sprintf("%s = :pk", pkAttr)}

	if q.skValue != "" {
		values[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
		switch q.skOperator {
		case "=":
			conditions = append(conditions, fmt.Sprintf("%s = :sk", skAttr))
		case "begins_with":
			conditions = append(conditions, fmt.Sprintf("begins_with(%s, :sk)", skAttr))
		default:
			return nil, fmt.Errorf("unsupported sort key operator %q", q.skOperator)
		}
	}

	params := &storagemodels.QueryParams{
		TableName:                 q.store.client.tableName,
		KeyConditionExpression:    strings.Join(conditions, " AND "),
		ExpressionAttributeValues: values,
		IndexName:                 indexName,
		Limit:                     q.limit,
		ScanIndexForward:          q.forward,
	}

	if q.entityType != "" {
		values[":etype"] = &types.AttributeValueMemberS{Value: q.entityType}
		params.FilterExpression = aws.String("EntityType = :etype")
	}

	return params, nil
}

// Execute runs the query and returns the results decoded as T. Items of
// other kinds surviving the filter are dropped rather than misreported.
func (q *QueryBuilder[T]) Execute(ctx context.Context) ([]T, error) {
	params, err := q.Build()
	if err != nil {
		return nil, err
	}

	results, err := q.store.Query(ctx, params)
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(results))
	for _, r := range results {
		switch v := r.(type) {
		case T:
			typed = append(typed, v)
		case *T:
			typed = append(typed, *v)
		}
	}
	return typed, nil
}

// Stream executes the query as a lazy stream.
func (q *QueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	params, err := q.Build()
	if err != nil {
		ch := make(chan storagemodels.StreamResult[T], 1)
		ch <- storagemodels.StreamResult[T]{
			Error: fmt.Errorf("failed to build query: %w", err),
		}
		close(ch)
		return ch
	}

	return q.store.Stream(ctx, params, opts...)
}
