/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UnmarshalFunc takes a raw table item and returns the decoded entity.
type UnmarshalFunc func(item map[string]types.AttributeValue) (interface{}, error)

var (
	typeRegistry = make(map[string]UnmarshalFunc)
	typeMu       sync.RWMutex
)

// RegisterType registers an unmarshal function for a given EntityType
// discriminator value ("User", "Event", ...). Registering the same value
// twice panics to prevent accidental overrides.
func RegisterType(entityType string, fn UnmarshalFunc) {
	typeMu.Lock()
	defer typeMu.Unlock()
	if _, exists := typeRegistry[entityType]; exists {
		panic(fmt.Sprintf("type registry: entity type %q already registered", entityType))
	}
	typeRegistry[entityType] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given
// EntityType value. If no function is registered, it returns an error.
func GetUnmarshalFunc(entityType string) (UnmarshalFunc, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()
	fn, ok := typeRegistry[entityType]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for %q", entityType)
	}
	return fn, nil
}
