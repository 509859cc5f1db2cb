/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// Index names for the two secondary key spaces of the events table.
const (
	IndexGSI1 = "GSI1"
	IndexGSI2 = "GSI2"
)

// GSIConfig holds the configuration for a secondary index key mapping.
type GSIConfig struct {
	// IndexName is the actual GSI name in the table (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the partition key attribute name in the GSI (e.g., "GSI1PK")
	PartitionKeyName string
	// SortKeyName is the sort key attribute name in the GSI (e.g., "GSI1SK")
	SortKeyName string
}

// DefaultGSIConfigs returns the index layout of the events table: GSI1
// carries the reverse lookups keyed on entity keys (events by creator,
// registrations by user) and GSI2 carries the city/zip projection.
func DefaultGSIConfigs() map[string]GSIConfig {
	return map[string]GSIConfig{
		IndexGSI1: {
			IndexName:        IndexGSI1,
			PartitionKeyName: "GSI1PK",
			SortKeyName:      "GSI1SK",
		},
		IndexGSI2: {
			IndexName:        IndexGSI2,
			PartitionKeyName: "GSI2PK",
			SortKeyName:      "GSI2SK",
		},
	}
}
