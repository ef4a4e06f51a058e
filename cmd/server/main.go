package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fintracker/finance-tracker/internal/api"
	"github.com/fintracker/finance-tracker/internal/config"
	"github.com/fintracker/finance-tracker/internal/database"
	"github.com/fintracker/finance-tracker/internal/events"
	"github.com/fintracker/finance-tracker/internal/logger"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/fintracker/finance-tracker/internal/repository/memory"
	"github.com/fintracker/finance-tracker/internal/repository/sqlite"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.IsProduction())

	if envErr != nil {
		log.Debug(".env file not found, using process environment")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos *repository.Repositories
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		repos = memory.NewRepositories()
	case config.StorageBackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			log.Fatalf("sqlite open failed: %v", err)
		}
		defer db.Close()
		repos = sqlite.NewRepositories(db)
	default:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db, log); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
		repos = repository.NewRepositories(db)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, log)
		if err != nil {
			// события необязательны, API работает и без брокера
			log.WithError(err).Warn("amqp unavailable, goal events disabled")
		} else {
			publisher = amqpPublisher
			log.WithFields(logrus.Fields{
				"exchange": cfg.AMQPExchange,
				"queue":    cfg.AMQPQueue,
			}).Info("goal events will be published to amqp")
		}
	}
	defer publisher.Close()

	services := service.NewServices(repos, publisher, cfg, log)
	server := api.NewServer(cfg, services, log)

	log.WithField("port", cfg.Port).WithField("backend", cfg.StorageBackend).Info("starting finance tracker api")
	if err := server.Run(ctx, ":"+cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Info("server stopped")
}
