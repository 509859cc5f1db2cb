/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package datastore defines the generic storage interfaces consumed by the
// service layer. The ddb subpackage implements them against DynamoDB; the
// mock subpackage provides an in-memory DynamoDB API fake for tests.
package datastore
