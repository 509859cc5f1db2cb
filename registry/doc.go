/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package registry holds the two process-wide lookup tables the datastore
// layer needs: index maps (per-type key templates such as "USER#{ID}") and
// the EntityType-to-unmarshal-function mapping used to decode items read
// from shared partitions into their concrete types.
package registry
