/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/eventsmanager/registry"
)

func init() {
	registry.RegisterIndexMap[User](map[string]string{
		"PK": "USER#{ID}",
		"SK": "USER#{ID}",
	})

	registry.RegisterIndexMap[EmailRecord](map[string]string{
		"PK": "EMAIL#{Email}",
		"SK": "EMAIL#{Email}",
	})

	registry.RegisterIndexMap[Event](map[string]string{
		"PK":     "EVENT#{ID}",
		"SK":     "EVENT#{ID}",
		"GSI1PK": "USER#{CreatedBy}",
		"GSI1SK": "EVENT#{ID}",
		"GSI2PK": "{City}",
		"GSI2SK": "{ZipCode}",
	})

	registry.RegisterIndexMap[Registration](map[string]string{
		"PK":     "EVENT#{EventID}",
		"SK":     "USER#{UserID}",
		"GSI1PK": "USER#{UserID}",
		"GSI1SK": "REGISTRATION#{EventID}",
	})

	registry.RegisterType(TypeUser, unmarshalAs[User])
	registry.RegisterType(TypeEmail, unmarshalAs[EmailRecord])
	registry.RegisterType(TypeEvent, unmarshalAs[Event])
	registry.RegisterType(TypeRegistration, unmarshalAs[Registration])
}

func unmarshalAs[T any](item map[string]types.AttributeValue) (interface{}, error) {
	result := new(T)
	if err := attributevalue.UnmarshalMap(item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}
