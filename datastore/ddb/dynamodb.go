/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	goerrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/eventsmanager/errors"
	"github.com/suparena/eventsmanager/registry"
)

// Condition expressions used for insert-only writes.
const (
	ConditionKeyAbsent     = "attribute_not_exists(PK)"
	ConditionKeyPairAbsent = "attribute_not_exists(PK) AND attribute_not_exists(SK)"
)

// DynamodbDataStore implements datastore.DataStore[T] on top of a shared
// Client. Keys are derived from the type's registered index map.
type DynamodbDataStore[T any] struct {
	client *Client
}

// NewDynamodbDataStore constructs a typed datastore over the given client.
func NewDynamodbDataStore[T any](client *Client) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{client: client}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros resolves every template in indexMap against the attribute
// values of keysInput. A macro referencing an absent or non-scalar
// attribute expands to the empty string.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")

			val, ok := av[key]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
		res[fieldName] = expanded
	}

	return res, nil
}

// expandStringKey replaces every macro in the indexMap templates with the
// single provided identifier.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds a primary key from the expanded index map.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return KeyFromStrings(pk, sk), nil
}

// KeyFromStrings builds a primary key attribute map from explicit values.
func KeyFromStrings(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// MarshalEntity marshals an entity and injects its expanded key and index
// attributes from the registered index map. The result is the exact item
// written by Put, which makes it reusable for transactional writes.
func MarshalEntity[T any](entity T) (map[string]types.AttributeValue, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, errors.ErrNoIndexMap
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return nil, err
	}

	for k, v := range expanded {
		if v == "" {
			return nil, errors.NewValidationError(k, "expanded key must not be empty")
		}
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	return av, nil
}

// EntityKey returns just the primary key pair for an entity.
func EntityKey[T any](entity T) (map[string]types.AttributeValue, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, errors.ErrNoIndexMap
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expanded)
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// GetOne retrieves a single entity using a business identifier expanded
// through the type's index map.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, errors.ErrNoIndexMap
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	return d.getItem(ctx, keyMap, key)
}

// GetByKey retrieves a single entity by explicit partition and sort key.
func (d *DynamodbDataStore[T]) GetByKey(ctx context.Context, pk, sk string) (*T, error) {
	if pk == "" || sk == "" {
		return nil, errors.NewValidationError("key", "partition and sort key must not be empty")
	}
	return d.getItem(ctx, KeyFromStrings(pk, sk), pk+"/"+sk)
}

func (d *DynamodbDataStore[T]) getItem(ctx context.Context, keyMap map[string]types.AttributeValue, key string) (*T, error) {
	out, err := d.client.api.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(d.client.tableName),
		Key:       keyMap,
	})
	if err != nil {
		return nil, errors.NewTransientError("get", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(typeName[T](), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores the entity with overwrite semantics.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	return d.put(ctx, entity, nil)
}

// PutIfAbsent stores the entity only when its key pair is unclaimed.
// A collision is reported as a condition-failed error and must not be
// retried with the same input.
func (d *DynamodbDataStore[T]) PutIfAbsent(ctx context.Context, entity T) error {
	return d.put(ctx, entity, aws.String(ConditionKeyPairAbsent))
}

func (d *DynamodbDataStore[T]) put(ctx context.Context, entity T, condition *string) error {
	av, err := MarshalEntity(entity)
	if err != nil {
		return err
	}

	_, err = d.client.api.PutItem(ctx, &sdk.PutItemInput{
		TableName:           aws.String(d.client.tableName),
		Item:                av,
		ConditionExpression: condition,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if goerrors.As(err, &cfe) {
			return errors.NewConditionFailedError("put", aws.ToString(condition))
		}
		return errors.NewTransientError("put", err)
	}
	return nil
}

// Delete removes the entity addressed by a business identifier. Deleting
// an absent item is not an error; callers that need existence semantics
// must check with GetOne first.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return errors.ErrNoIndexMap
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}
	return d.deleteItem(ctx, keyMap)
}

// DeleteByKey removes an item by explicit partition and sort key.
func (d *DynamodbDataStore[T]) DeleteByKey(ctx context.Context, pk, sk string) error {
	if pk == "" || sk == "" {
		return errors.NewValidationError("key", "partition and sort key must not be empty")
	}
	return d.deleteItem(ctx, KeyFromStrings(pk, sk))
}

func (d *DynamodbDataStore[T]) deleteItem(ctx context.Context, keyMap map[string]types.AttributeValue) error {
	_, err := d.client.api.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(d.client.tableName),
		Key:       keyMap,
	})
	if err != nil {
		return errors.NewTransientError("delete", err)
	}
	return nil
}
