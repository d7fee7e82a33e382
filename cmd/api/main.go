package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-forecast-api/infrastructure/integrator/forecastjob"
	"github.com/vfg2006/order-forecast-api/infrastructure/repository"
	"github.com/vfg2006/order-forecast-api/internal/api"
	"github.com/vfg2006/order-forecast-api/internal/config"
	"github.com/vfg2006/order-forecast-api/internal/scheduler"
	"github.com/vfg2006/order-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/order-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/order-forecast-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, falling back to info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	forecastRepo := repository.NewForecastRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	bundler := forecasting.NewService(forecastRepo, orderRepo)
	reporter := reporting.NewService(bundler)

	forecastTrigger := forecastjob.NewClient(cfg)

	forecastJobSyncService := scheduler.NewForecastJobSyncService(forecastTrigger, cfg)
	if err := forecastJobSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start forecast job scheduler")
	}

	server, err := api.New(
		cfg,
		bundler,
		reporter,
		authenticator,
		forecastTrigger,
		forecastJobSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
