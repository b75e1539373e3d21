package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askov/ladepris-go/cache"
	"github.com/askov/ladepris-go/chart"
	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/config"
	"github.com/askov/ladepris-go/database"
	"github.com/askov/ladepris-go/energidata"
	"github.com/askov/ladepris-go/logging"
	"github.com/askov/ladepris-go/task"
	"github.com/askov/ladepris-go/www"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("ladepris is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.GetPath())
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	clk := clock.NewSystem(cnfg.Time.OffsetHours)
	provider := energidata.New(cnfg.EnergyPrice.GetArea())
	renderer := chart.NewFileRenderer(
		logger.With("module", "chart"),
		cnfg.Api.GetArtifactsDir(),
		"favicon.ico")

	gate := cache.New(
		logger.With("module", "cache"),
		clk,
		provider,
		renderer,
		cnfg.Fees.Schedule(),
		cnfg.Station.GetSurcharge(),
		cnfg.EnergyPrice.GetPublishHour(),
		cnfg.EnergyPrice.GetFetchTimeout())

	tasks := task.NewTasks(db, gate, renderer, cnfg)
	tasks.Run()
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server, err := www.StartServer(db, gate, clk, cnfg.Api, Version)
	if err != nil {
		panic(fmt.Sprintf("failed to start server: %v", err))
	}
	gate.OnRender = server.NotifyArtifact
	server.Run(ctx)
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
