/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func item(attrs map[string]string) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(attrs))
	for k, v := range attrs {
		out[k] = &types.AttributeValueMemberS{Value: v}
	}
	return out
}

func put(t *testing.T, api *API, attrs map[string]string) {
	t.Helper()
	_, err := api.PutItem(context.Background(), &sdk.PutItemInput{
		TableName: aws.String("t"),
		Item:      item(attrs),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestConditionalPut(t *testing.T) {
	api := New()
	put(t, api, map[string]string{"PK": "A#1", "SK": "A#1"})

	_, err := api.PutItem(context.Background(), &sdk.PutItemInput{
		TableName:           aws.String("t"),
		Item:                item(map[string]string{"PK": "A#1", "SK": "A#1"}),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})

	var cfe *types.ConditionalCheckFailedException
	if !errors.As(err, &cfe) {
		t.Fatalf("expected conditional check failure, got %v", err)
	}
}

func TestQueryPrefixAndOrder(t *testing.T) {
	api := New()
	put(t, api, map[string]string{"PK": "P", "SK": "B#2", "EntityType": "B"})
	put(t, api, map[string]string{"PK": "P", "SK": "A#1", "EntityType": "A"})
	put(t, api, map[string]string{"PK": "P", "SK": "A#3", "EntityType": "A"})
	put(t, api, map[string]string{"PK": "Q", "SK": "A#0", "EntityType": "A"})

	out, err := api.Query(context.Background(), &sdk.QueryInput{
		TableName:              aws.String("t"),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "P"},
			":sk": &types.AttributeValueMemberS{Value: "A#"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out.Items))
	}
	if got := stringAttr(out.Items[0], "SK"); got != "A#1" {
		t.Errorf("expected lexicographic order, first SK was %q", got)
	}
}

func TestQueryIndexWithFilter(t *testing.T) {
	api := New()
	put(t, api, map[string]string{"PK": "E#1", "SK": "E#1", "GSI1PK": "U#1", "GSI1SK": "E#1", "EntityType": "Event"})
	put(t, api, map[string]string{"PK": "E#1", "SK": "U#1", "GSI1PK": "U#1", "GSI1SK": "R#1", "EntityType": "Registration"})

	out, err := api.Query(context.Background(), &sdk.QueryInput{
		TableName:              aws.String("t"),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		FilterExpression:       aws.String("EntityType = :etype"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: "U#1"},
			":etype": &types.AttributeValueMemberS{Value: "Event"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Items) != 1 || stringAttr(out.Items[0], "EntityType") != "Event" {
		t.Fatalf("expected only the event, got %d items", len(out.Items))
	}
}

func TestQueryPagination(t *testing.T) {
	api := New()
	for _, sk := range []string{"A#1", "A#2", "A#3"} {
		put(t, api, map[string]string{"PK": "P", "SK": sk})
	}

	query := func(start map[string]types.AttributeValue) *sdk.QueryOutput {
		out, err := api.Query(context.Background(), &sdk.QueryInput{
			TableName:              aws.String("t"),
			KeyConditionExpression: aws.String("PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: "P"},
			},
			Limit:             aws.Int32(2),
			ExclusiveStartKey: start,
		})
		if err != nil {
			t.Fatal(err)
		}
		return out
	}

	first := query(nil)
	if len(first.Items) != 2 || first.LastEvaluatedKey == nil {
		t.Fatalf("expected a full first page with a page token, got %d items", len(first.Items))
	}

	second := query(first.LastEvaluatedKey)
	if len(second.Items) != 1 || second.LastEvaluatedKey != nil {
		t.Fatalf("expected a final page of 1 item, got %d", len(second.Items))
	}
	if stringAttr(second.Items[0], "SK") != "A#3" {
		t.Errorf("unexpected item on second page: %q", stringAttr(second.Items[0], "SK"))
	}
}

func TestTransactWriteAtomicity(t *testing.T) {
	api := New()
	put(t, api, map[string]string{"PK": "M#a", "SK": "M#a"})

	_, err := api.TransactWriteItems(context.Background(), &sdk.TransactWriteItemsInput{
		ClientRequestToken: aws.String("tok-1"),
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String("t"), Item: item(map[string]string{"PK": "U#1", "SK": "U#1"})}},
			{Put: &types.Put{
				TableName:           aws.String("t"),
				Item:                item(map[string]string{"PK": "M#a", "SK": "M#a"}),
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	})

	var cancelled *types.TransactionCanceledException
	if !errors.As(err, &cancelled) {
		t.Fatalf("expected transaction cancellation, got %v", err)
	}
	if aws.ToString(cancelled.CancellationReasons[1].Code) != "ConditionalCheckFailed" {
		t.Error("expected ConditionalCheckFailed on item 1")
	}
	if aws.ToString(cancelled.CancellationReasons[0].Code) != "None" {
		t.Error("expected None on item 0")
	}
	if api.Item("U#1", "U#1") != nil {
		t.Error("no item may be applied when the transaction is cancelled")
	}
}

func TestTransactTokenReplay(t *testing.T) {
	api := New()

	input := &sdk.TransactWriteItemsInput{
		ClientRequestToken: aws.String("tok-2"),
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String("t"),
				Item:                item(map[string]string{"PK": "U#1", "SK": "U#1"}),
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	}

	if _, err := api.TransactWriteItems(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	// Replaying the same token must not be treated as a fresh conflicting
	// write.
	if _, err := api.TransactWriteItems(context.Background(), input); err != nil {
		t.Fatalf("token replay should be acknowledged: %v", err)
	}
}
