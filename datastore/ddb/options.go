/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Client.
type Option func(*options)

type options struct {
	api        API
	logger     *zap.Logger
	gsiConfigs map[string]GSIConfig
}

func newOptions() *options {
	return &options{
		logger:     zap.NewNop(),
		gsiConfigs: DefaultGSIConfigs(),
	}
}

// WithAPI sets a custom API implementation. This is useful when a custom
// DynamoDB configuration is required, or for injecting a fake in tests.
func WithAPI(api API) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithLogger sets the logger used by the client. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGSIConfigs overrides the secondary-index attribute configuration,
// e.g. when loaded from an index-config file.
func WithGSIConfigs(configs map[string]GSIConfig) Option {
	return func(o *options) {
		if len(configs) > 0 {
			o.gsiConfigs = configs
		}
	}
}
