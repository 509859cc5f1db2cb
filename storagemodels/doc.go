/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package storagemodels contains the parameter and result types shared
// between the datastore interfaces and their implementations: query
// parameters, transactional write inputs, and streaming types.
package storagemodels
