/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is an in-memory, single-table implementation of the DynamoDB calls
// used by the ddb package. It emulates the store-level behavior the data
// layer depends on: key collisions, conditional writes, partition queries
// over the primary key and both secondary indexes, pagination, and atomic
// multi-item transactions with per-item cancellation reasons.
type API struct {
	mu sync.Mutex

	// partitions maps PK -> SK -> item.
	partitions map[string]map[string]map[string]types.AttributeValue

	// appliedTokens records transaction idempotency tokens already
	// committed; a replayed token is acknowledged without re-applying.
	appliedTokens map[string]bool

	getErr      error
	putErr      error
	deleteErr   error
	queryErr    error
	transactErr error
}

// New creates an empty in-memory API.
func New() *API {
	return &API{
		partitions:    make(map[string]map[string]map[string]types.AttributeValue),
		appliedTokens: make(map[string]bool),
	}
}

// WithGetError makes GetItem fail with err until cleared.
func (a *API) WithGetError(err error) *API { a.getErr = err; return a }

// WithPutError makes PutItem fail with err until cleared.
func (a *API) WithPutError(err error) *API { a.putErr = err; return a }

// WithDeleteError makes DeleteItem fail with err until cleared.
func (a *API) WithDeleteError(err error) *API { a.deleteErr = err; return a }

// WithQueryError makes Query fail with err until cleared.
func (a *API) WithQueryError(err error) *API { a.queryErr = err; return a }

// WithTransactError makes TransactWriteItems fail with err until cleared.
func (a *API) WithTransactError(err error) *API { a.transactErr = err; return a }

// Len reports the number of stored items.
func (a *API) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, p := range a.partitions {
		n += len(p)
	}
	return n
}

// Item returns a stored item by primary key, or nil.
func (a *API) Item(pk, sk string) map[string]types.AttributeValue {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyItem(a.partitions[pk][sk])
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if item == nil {
		return ""
	}
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	cp := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		cp[k] = v
	}
	return cp
}

func (a *API) exists(pk, sk string) bool {
	_, ok := a.partitions[pk][sk]
	return ok
}

// checkCondition evaluates the restricted condition grammar the data layer
// emits: attribute_not_exists on the key pair.
func (a *API) checkCondition(condition *string, pk, sk string) error {
	if condition == nil {
		return nil
	}
	switch strings.TrimSpace(*condition) {
	case "attribute_not_exists(PK)", "attribute_not_exists(PK) AND attribute_not_exists(SK)":
		if a.exists(pk, sk) {
			return &types.ConditionalCheckFailedException{
				Message: aws.String("The conditional request failed"),
			}
		}
		return nil
	default:
		return fmt.Errorf("mock: unsupported condition expression %q", *condition)
	}
}

func (a *API) storeItem(item map[string]types.AttributeValue) {
	pk := stringAttr(item, "PK")
	sk := stringAttr(item, "SK")
	if a.partitions[pk] == nil {
		a.partitions[pk] = make(map[string]map[string]types.AttributeValue)
	}
	a.partitions[pk][sk] = copyItem(item)
}

func (a *API) removeItem(key map[string]types.AttributeValue) {
	pk := stringAttr(key, "PK")
	sk := stringAttr(key, "SK")
	delete(a.partitions[pk], sk)
	if len(a.partitions[pk]) == 0 {
		delete(a.partitions, pk)
	}
}

// GetItem implements the point lookup.
func (a *API) GetItem(_ context.Context, params *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.getErr != nil {
		return nil, a.getErr
	}

	pk := stringAttr(params.Key, "PK")
	sk := stringAttr(params.Key, "SK")
	return &sdk.GetItemOutput{Item: copyItem(a.partitions[pk][sk])}, nil
}

// PutItem implements the single-item write with optional condition.
func (a *API) PutItem(_ context.Context, params *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.putErr != nil {
		return nil, a.putErr
	}

	pk := stringAttr(params.Item, "PK")
	sk := stringAttr(params.Item, "SK")
	if pk == "" || sk == "" {
		return nil, fmt.Errorf("mock: item missing PK or SK")
	}

	if err := a.checkCondition(params.ConditionExpression, pk, sk); err != nil {
		return nil, err
	}

	a.storeItem(params.Item)
	return &sdk.PutItemOutput{}, nil
}

// DeleteItem implements the single-item delete.
func (a *API) DeleteItem(_ context.Context, params *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.deleteErr != nil {
		return nil, a.deleteErr
	}

	a.removeItem(params.Key)
	return &sdk.DeleteItemOutput{}, nil
}

// TransactWriteItems implements the atomic multi-item write. Conditions
// are evaluated first; if any fails, nothing is applied and the
// cancellation reasons report which item failed. A client request token
// that was already committed is acknowledged without re-applying.
func (a *API) TransactWriteItems(_ context.Context, params *sdk.TransactWriteItemsInput, _ ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.transactErr != nil {
		return nil, a.transactErr
	}

	token := aws.ToString(params.ClientRequestToken)
	if token != "" && a.appliedTokens[token] {
		return &sdk.TransactWriteItemsOutput{}, nil
	}

	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, item := range params.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if item.Put == nil {
			continue
		}
		pk := stringAttr(item.Put.Item, "PK")
		sk := stringAttr(item.Put.Item, "SK")
		if err := a.checkCondition(item.Put.ConditionExpression, pk, sk); err != nil {
			if _, ok := err.(*types.ConditionalCheckFailedException); !ok {
				return nil, err
			}
			reasons[i] = types.CancellationReason{
				Code:    aws.String("ConditionalCheckFailed"),
				Message: aws.String("The conditional request failed"),
			}
			failed = true
		}
	}

	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, item := range params.TransactItems {
		switch {
		case item.Put != nil:
			a.storeItem(item.Put.Item)
		case item.Delete != nil:
			a.removeItem(item.Delete.Key)
		}
	}

	if token != "" {
		a.appliedTokens[token] = true
	}
	return &sdk.TransactWriteItemsOutput{}, nil
}

// Query implements partition queries over the primary key space and the
// secondary indexes, including sort-key predicates, EntityType filters,
// lexicographic ordering, and page-token pagination.
func (a *API) Query(_ context.Context, params *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.queryErr != nil {
		return nil, a.queryErr
	}

	pkAttr, skAttr := "PK", "SK"
	if params.IndexName != nil {
		pkAttr = *params.IndexName + "PK"
		skAttr = *params.IndexName + "SK"
	}

	cond, err := parseKeyCondition(aws.ToString(params.KeyConditionExpression), pkAttr, skAttr, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	var matched []map[string]types.AttributeValue
	for _, partition := range a.partitions {
		for _, item := range partition {
			if stringAttr(item, pkAttr) != cond.pkValue {
				continue
			}
			sk := stringAttr(item, skAttr)
			if cond.skEquals != "" && sk != cond.skEquals {
				continue
			}
			if cond.skPrefix != "" && !strings.HasPrefix(sk, cond.skPrefix) {
				continue
			}
			matched = append(matched, copyItem(item))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return stringAttr(matched[i], skAttr) < stringAttr(matched[j], skAttr)
	})
	if params.ScanIndexForward != nil && !*params.ScanIndexForward {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	// Resume after the page token, then apply the page limit before the
	// filter expression, as the real store does.
	if params.ExclusiveStartKey != nil {
		startSK := stringAttr(params.ExclusiveStartKey, skAttr)
		idx := 0
		for i, item := range matched {
			if stringAttr(item, skAttr) == startSK {
				idx = i + 1
				break
			}
		}
		matched = matched[idx:]
	}

	var lastEvaluatedKey map[string]types.AttributeValue
	if params.Limit != nil && int(*params.Limit) < len(matched) {
		matched = matched[:*params.Limit]
		last := matched[len(matched)-1]
		lastEvaluatedKey = map[string]types.AttributeValue{
			"PK":   last["PK"],
			"SK":   last["SK"],
			pkAttr: last[pkAttr],
			skAttr: last[skAttr],
		}
	}

	filtered := matched
	if filter := aws.ToString(params.FilterExpression); filter != "" {
		attr, placeholder, err := parseEqualityFilter(filter)
		if err != nil {
			return nil, err
		}
		want, ok := params.ExpressionAttributeValues[placeholder].(*types.AttributeValueMemberS)
		if !ok {
			return nil, fmt.Errorf("mock: missing filter value %s", placeholder)
		}
		filtered = filtered[:0:0]
		for _, item := range matched {
			if stringAttr(item, attr) == want.Value {
				filtered = append(filtered, item)
			}
		}
	}

	return &sdk.QueryOutput{
		Items:            filtered,
		Count:            int32(len(filtered)),
		LastEvaluatedKey: lastEvaluatedKey,
	}, nil
}

type keyCondition struct {
	pkValue  string
	skEquals string
	skPrefix string
}

// parseKeyCondition understands the expressions the query builder emits:
// "<pk> = :pk", optionally followed by "AND <sk> = :sk" or
// "AND begins_with(<sk>, :sk)".
func parseKeyCondition(expr, pkAttr, skAttr string, values map[string]types.AttributeValue) (keyCondition, error) {
	var cond keyCondition

	valueOf := func(placeholder string) (string, error) {
		v, ok := values[placeholder].(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("mock: missing expression value %s", placeholder)
		}
		return v.Value, nil
	}

	for _, clause := range strings.Split(expr, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case clause == pkAttr+" = :pk":
			v, err := valueOf(":pk")
			if err != nil {
				return cond, err
			}
			cond.pkValue = v
		case clause == skAttr+" = :sk":
			v, err := valueOf(":sk")
			if err != nil {
				return cond, err
			}
			cond.skEquals = v
		case clause == "begins_with("+skAttr+", :sk)":
			v, err := valueOf(":sk")
			if err != nil {
				return cond, err
			}
			cond.skPrefix = v
		default:
			return cond, fmt.Errorf("mock: unsupported key condition clause %q", clause)
		}
	}

	if cond.pkValue == "" {
		return cond, fmt.Errorf("mock: key condition missing partition clause in %q", expr)
	}
	return cond, nil
}

// parseEqualityFilter understands "Attr = :placeholder".
func parseEqualityFilter(expr string) (attr, placeholder string, err error) {
	parts := strings.Split(expr, " = ")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], ":") {
		return "", "", fmt.Errorf("mock: unsupported filter expression %q", expr)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
