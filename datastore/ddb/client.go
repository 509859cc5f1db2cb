/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// API is the subset of the DynamoDB client used by this package. A custom
// implementation can be injected with WithAPI, which is how tests run
// against an in-memory fake.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *sdk.TransactWriteItemsInput, optFns ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error)
}

// Client is the single long-lived handle to the shared table. It owns the
// underlying DynamoDB connection and the secondary-index configuration;
// typed datastores are created on top of it with NewDynamodbDataStore.
// Client is safe for concurrent use.
type Client struct {
	api        API
	tableName  string
	gsiConfigs map[string]GSIConfig
	logger     *zap.Logger
}

// NewClient initializes a Client for the given table using static AWS
// credentials, mirroring how the rest of the deployment authenticates.
func NewClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, tableName string, opts ...Option) (*Client, error) {
	options := newOptions()
	for _, o := range opts {
		o(options)
	}

	c := &Client{
		tableName:  tableName,
		gsiConfigs: options.gsiConfigs,
		logger:     options.logger,
	}

	if options.api != nil {
		c.api = options.api
		return c, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	c.api = sdk.NewFromConfig(cfg)
	c.logger.Info("dynamodb client initialized",
		zap.String("table", tableName),
		zap.String("region", awsRegion),
	)
	return c, nil
}

// TableName returns the name of the backing table.
func (c *Client) TableName() string {
	return c.tableName
}

// GSIConfig returns the configuration for a named secondary index.
func (c *Client) GSIConfig(indexName string) (GSIConfig, bool) {
	cfg, ok := c.gsiConfigs[indexName]
	return cfg, ok
}
