package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/roadside_dispatch/internal/config"
	v1 "github.com/shenikar/roadside_dispatch/internal/handler/http/v1"
	"github.com/shenikar/roadside_dispatch/internal/notification"
	"github.com/shenikar/roadside_dispatch/internal/repository"
	"github.com/shenikar/roadside_dispatch/internal/service"
	"github.com/shenikar/roadside_dispatch/internal/sweeper"
	"github.com/shenikar/roadside_dispatch/pkg/logger"
	"github.com/shenikar/roadside_dispatch/pkg/postgres"
	"github.com/shenikar/roadside_dispatch/pkg/rabbitmq"
	redisclient "github.com/shenikar/roadside_dispatch/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/roadside_dispatch/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Roadside Emergency Dispatch API
// @version 1.0
// @description Dispatch coordinator that broadcasts roadside emergencies to nearby workshops and resolves the first acceptance.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен для кеша, очереди уведомлений и аренды очистки
	var redisClient *redis.Client
	if cfg.StorageDriver == config.StorageDriverPostgres || cfg.NotifyDriver == config.NotifyDriverRedis {
		redisClient, err = redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:            cfg.RedisAddr,
			Password:        cfg.RedisPass,
			DB:              cfg.RedisDB,
			PoolSize:        cfg.RedisPoolSize,
			ConnectAttempts: 5,
			RetryDelay:      time.Second,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	// Инициализация хранилища
	var (
		emergencyRepo service.EmergencyRepository
		directory     service.WorkshopDirectory
	)
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		emergencyRepo = repository.NewEmergencyRepository(dbpool, redisClient, cfg.CacheTTL)
		directory = repository.NewWorkshopDirectory(dbpool)
	case config.StorageDriverMemory:
		store := repository.NewMemoryStore()
		if cfg.WorkshopsSeedFile != "" {
			workshops, err := repository.LoadWorkshopsSeed(cfg.WorkshopsSeedFile)
			if err != nil {
				log.Fatalf("Failed to load workshops seed: %v", err)
			}
			for _, w := range workshops {
				store.AddWorkshop(w)
			}
			log.WithField("workshops", len(workshops)).Info("Workshops seed loaded")
		}
		emergencyRepo, directory = store, store
		log.Warn("Using in-memory storage, data will not survive a restart")
	}

	// Инициализация шлюза уведомлений
	var notifier service.Notifier
	switch cfg.NotifyDriver {
	case config.NotifyDriverRabbitMQ:
		conn, err := rabbitmq.NewConnection(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer conn.Close()

		publisher, err := notification.NewRabbitMQPublisher(conn, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to init RabbitMQ publisher: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
		log.Info("Successfully connected to RabbitMQ")
	default:
		notifier = notification.NewRedisPublisher(redisClient)

		// Инициализация и запуск воркера доставки уведомлений
		worker := notification.NewWorker(redisClient, log, cfg)
		worker.Start(ctx)
	}

	// Инициализация сервисов
	emergencyService := service.NewEmergencyService(emergencyRepo, directory, notifier, log, cfg)

	// Запуск периодической очистки просроченных рассылок
	hostname, _ := os.Hostname()
	sweeper.New(emergencyService, redisClient, log, cfg.SweepInterval(), hostname).Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(emergencyService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Останавливаем воркер и очистку
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// дожидаемся уведомлений, отправка которых уже началась
	if err := emergencyService.Drain(shutdownCtx); err != nil {
		log.WithError(err).Warn("Pending notifications were not delivered before shutdown")
	}

	log.Info("Server gracefully stopped")
}
