/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package main runs the event-management HTTP server with graceful shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/eventsmanager"
	"github.com/suparena/eventsmanager/api"
	"github.com/suparena/eventsmanager/config"
	"github.com/suparena/eventsmanager/datastore/ddb"
	"github.com/suparena/eventsmanager/models"
	"github.com/suparena/eventsmanager/service"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := eventsmanager.GetVersionInfo()
		fmt.Printf("Events manager version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	indexConfigs, err := config.LoadIndexConfigs(cfg.Storage.IndexConfigPath)
	if err != nil {
		logger.Fatal("load index config", zap.Error(err))
	}

	ctx := context.Background()
	client, err := ddb.NewClient(ctx,
		cfg.AWS.AccessKeyID,
		cfg.AWS.SecretAccessKey,
		cfg.AWS.Region,
		cfg.Storage.TableName,
		ddb.WithLogger(logger),
		ddb.WithGSIConfigs(indexConfigs),
	)
	if err != nil {
		logger.Fatal("dynamodb client", zap.Error(err))
	}

	users := ddb.NewDynamodbDataStore[models.User](client)
	emails := ddb.NewDynamodbDataStore[models.EmailRecord](client)
	events := ddb.NewDynamodbDataStore[models.Event](client)
	registrations := ddb.NewDynamodbDataStore[models.Registration](client)

	var eventOpts []service.EventsOption
	if cfg.Storage.Cascade {
		eventOpts = append(eventOpts, service.WithRegistrationCascade())
	}

	router := api.NewRouter(api.Services{
		Users:         service.NewUsers(client, users, emails, logger),
		Events:        service.NewEvents(events, registrations, logger, eventOpts...),
		Registrations: service.NewRegistrations(events, registrations, logger),
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
