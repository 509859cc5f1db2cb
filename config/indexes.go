/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/eventsmanager/datastore/ddb"
)

// indexFile is the YAML shape of an index-layout file:
//
//	indexes:
//	  GSI1:
//	    partition_key: GSI1PK
//	    sort_key: GSI1SK
type indexFile struct {
	Indexes map[string]indexEntry `yaml:"indexes"`
}

type indexEntry struct {
	PartitionKey string `yaml:"partition_key"`
	SortKey      string `yaml:"sort_key"`
}

// LoadIndexConfigs reads secondary-index attribute layouts from a YAML
// file. An empty path yields the default layout.
func LoadIndexConfigs(path string) (map[string]ddb.GSIConfig, error) {
	if path == "" {
		return ddb.DefaultGSIConfigs(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index config: %w", err)
	}

	var file indexFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse index config: %w", err)
	}
	if len(file.Indexes) == 0 {
		return nil, fmt.Errorf("index config %s defines no indexes", path)
	}

	configs := make(map[string]ddb.GSIConfig, len(file.Indexes))
	for name, entry := range file.Indexes {
		if entry.PartitionKey == "" || entry.SortKey == "" {
			return nil, fmt.Errorf("index %s is missing partition_key or sort_key", name)
		}
		configs[name] = ddb.GSIConfig{
			IndexName:        name,
			PartitionKeyName: entry.PartitionKey,
			SortKeyName:      entry.SortKey,
		}
	}
	return configs, nil
}
