/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/eventsmanager/errors"
	"github.com/suparena/eventsmanager/registry"
	"github.com/suparena/eventsmanager/storagemodels"
)

// Query performs a partition query using the provided parameters. Items
// are decoded through the type registry keyed on the EntityType attribute
// written at persist time, so a shared partition yields each item as its
// proper concrete type.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	input := &sdk.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
	out, err := d.client.api.Query(ctx, input)
	if err != nil {
		return nil, errors.NewTransientError("query", err)
	}

	var results []interface{}
	for _, item := range out.Items {
		var entityType string
		if attr, ok := item["EntityType"]; ok {
			if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
				return nil, fmt.Errorf("failed to unmarshal EntityType: %w", err)
			}
		} else {
			return nil, fmt.Errorf("missing EntityType attribute in item")
		}

		unmarshalFn, err := registry.GetUnmarshalFunc(entityType)
		if err != nil {
			// Fallback: unmarshal unregistered kinds into a generic map.
			var generic map[string]interface{}
			if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
				return nil, fmt.Errorf("failed to unmarshal generic item: %w", err)
			}
			results = append(results, generic)
			continue
		}

		obj, err := unmarshalFn(item)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", entityType, err)
		}
		results = append(results, obj)
	}

	return results, nil
}
