/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"github.com/oklog/ulid/v2"
)

// NewID returns a fresh entity identifier. ULIDs are unique and sort
// lexicographically by creation time, so key ranges stay ordered.
func NewID() string {
	return ulid.Make().String()
}
