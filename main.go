package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/angas/solara-go/config"
	"github.com/angas/solara-go/database"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/logging"
	"github.com/angas/solara-go/metrics"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/task"
	"github.com/angas/solara-go/workspace"
	"github.com/angas/solara-go/www"
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

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := logging.NewConsoleHandler(os.Stdout, cnfg.Logging.GetConsoleLevel())
	slog.New(consoleHandler).Debug("solara is starting...", slog.String("version", Version))

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

	ws := workspace.New()
	predictor := predict.New(predict.NewRand(cnfg.Prediction.Seed), cnfg.Prediction.AllowPastDates)
	mc := metrics.NewCollector(metrics.Namespace)

	tasks := task.NewTasks(db, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		if err := tasks.Run(); err != nil {
			panic(fmt.Sprintf("failed to schedule tasks: %v", err))
		}
		defer tasks.Stop()
	}

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

	server, err := www.NewServer(cnfg, db, ws, predictor, mc, predict.NewRand(cnfg.Prediction.Seed), Version)
	if err != nil {
		panic(fmt.Sprintf("failed to create server: %v", err))
	}
	if err := server.Run(ctx); err != nil {
		exitWithError(logger, err)
	}
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	if syncer, ok := logger.Handler().(interface{ Sync() error }); ok {
		if syncErr := syncer.Sync(); syncErr != nil {
			logger.Error("failed to flush logger", slog.Any("error", syncErr))
		}
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
