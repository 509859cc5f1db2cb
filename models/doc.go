/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package models defines the entities stored in the shared events table
// (User, Event, Registration and the internal email uniqueness record),
// their key codec, and their index-map and type registrations.
//
// Every entity lives in one table keyed by PK/SK and carries an EntityType
// discriminator. Key layout:
//
//	User:         PK = SK = USER#<id>
//	Event:        PK = SK = EVENT#<id>
//	              GSI1: USER#<creator> / EVENT#<id>   (events by creator)
//	              GSI2: <city> / <zip>                (events by city)
//	Registration: PK = EVENT#<event-id>, SK = USER#<user-id>
//	              GSI1: USER#<user-id> / REGISTRATION#<event-id>
//	EmailRecord:  PK = SK = EMAIL#<address> (uniqueness shadow, internal)
package models
