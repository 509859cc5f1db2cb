/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/suparena/eventsmanager/errors"
)

// respondError maps the storage error taxonomy onto HTTP statuses.
// Transient failures become 503 so clients know a retry may succeed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.IsNotFound(err):
		NotFound(c, err.Error())
	case errors.IsConflict(err):
		Conflict(c, err.Error())
	case errors.IsValidationError(err):
		BadRequest(c, err.Error())
	case errors.IsTransient(err):
		ServiceUnavailable(c, "storage temporarily unavailable")
	default:
		Internal(c, "internal error")
	}
}
