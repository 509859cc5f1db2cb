/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads application configuration from the environment,
// with an optional .env file for local development, and secondary-index
// attribute layouts from a YAML file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server  ServerConfig
	AWS     AWSConfig
	Storage StorageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// AWSConfig holds AWS credentials and region.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// StorageConfig holds the table name and the optional index-layout file.
type StorageConfig struct {
	TableName       string
	IndexConfigPath string
	Cascade         bool
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "30"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Storage: StorageConfig{
			TableName:       getEnv("EVENTS_TABLE_NAME", "events"),
			IndexConfigPath: getEnv("INDEX_CONFIG_PATH", ""),
			Cascade:         getEnvBool("DELETE_CASCADE", false),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
