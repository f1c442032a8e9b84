package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"train-ticketing/internal/auth"
	"train-ticketing/internal/booking"
	booking_api "train-ticketing/internal/booking/api"
	booking_db "train-ticketing/internal/booking/db"
	booking_redis "train-ticketing/internal/booking/redis"
	"train-ticketing/internal/catalog"
	catalog_api "train-ticketing/internal/catalog/api"
	catalog_db "train-ticketing/internal/catalog/db"
	"train-ticketing/internal/config"
	"train-ticketing/internal/database/migrations"
	"train-ticketing/internal/journey"
	journey_api "train-ticketing/internal/journey/api"
	journey_db "train-ticketing/internal/journey/db"
	"train-ticketing/internal/kafka"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/ticketqr"
)

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err == nil {
			err = sqldb.Ping()
		}
		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	bunDB.RegisterModel((*models.JourneyWorker)(nil))
	return bunDB
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger("station-service")
	defer log.Close()

	log.Info("APP", "Starting Station Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()
	bunDB := connectPostgres(cfg.Database, log)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := runner.MigrateUp(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}

	redisClient := connectRedis(ctx, cfg.Redis, log)
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, kafka.Topics{
		OrderConfirmation: cfg.Kafka.Topics.OrderConfirmation,
		JourneyCreated:    cfg.Kafka.Topics.JourneyCreated,
	})
	defer producer.Close()

	if cfg.Kafka.Enabled {
		topics := []string{cfg.Kafka.Topics.OrderConfirmation, cfg.Kafka.Topics.JourneyCreated}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
	}

	seatCache := booking_redis.NewSeatCache(redisClient)
	qrGen := ticketqr.NewGenerator(cfg.QRSecret)

	orderService := booking.NewOrderService(
		&booking_db.DB{Bun: bunDB},
		seatCache,
		producer,
		qrGen,
		log,
	)
	journeyService := journey.NewJourneyService(&journey_db.DB{Bun: bunDB}, producer, log)
	catalogService := catalog.NewCatalogService(&catalog_db.DB{Bun: bunDB}, log)

	orderHandler := &booking_api.Handler{OrderService: orderService, Logger: log}
	journeyHandler := &journey_api.Handler{JourneyService: journeyService, Logger: log}
	catalogHandler := &catalog_api.Handler{CatalogService: catalogService, Logger: log}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// Public reads.
	r.Route("/api/journeys", func(r chi.Router) {
		r.Get("/", journeyHandler.ListJourneys)
		r.Get("/{journeyId}", journeyHandler.GetJourney)
		r.Get("/{journeyId}/seats", orderHandler.GetJourneySeats)
	})
	r.Get("/api/stations", catalogHandler.ListStations)
	r.Get("/api/train-types", catalogHandler.ListTrainTypes)
	r.Get("/api/trains/{trainId}", catalogHandler.GetTrain)

	// Authenticated writes.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.OIDCIssuer))

		r.Route("/api/orders", func(r chi.Router) {
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/", orderHandler.ListMyOrders)
			r.Get("/{orderId}", orderHandler.GetOrder)
		})

		r.Post("/api/journeys", journeyHandler.CreateJourney)
		r.Post("/api/stations", catalogHandler.CreateStation)
		r.Post("/api/train-types", catalogHandler.CreateTrainType)
		r.Post("/api/trains", catalogHandler.CreateTrain)
		r.Post("/api/routes", catalogHandler.CreateRoute)
		r.Route("/api/crews", func(r chi.Router) {
			r.Post("/", catalogHandler.CreateCrew)
			r.Get("/", catalogHandler.ListCrews)
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Station Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Station Service shutdown complete")
	}
}
