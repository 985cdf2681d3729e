package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reviewhub/internal/app/reviewhub/config"
	"reviewhub/internal/app/reviewhub/entity"
	"reviewhub/internal/app/reviewhub/handler"
	"reviewhub/internal/app/reviewhub/repository"
	"reviewhub/internal/app/reviewhub/service"
	"reviewhub/internal/app/reviewhub/util"
	"reviewhub/pkg/logger"
	"reviewhub/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("reviewhub", cfg.LogLevel)

	ctx := context.Background()

	// PostgreSQL через GORM - товары и комментарии
	gormDB, err := connectGorm(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL (gorm)")
	}
	if err := gormDB.AutoMigrate(&entity.Product{}, &entity.Comment{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate schema")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL (gorm)")

	// PostgreSQL через pgx pool - пользователи
	pool, err := connectPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL (pgx)")
	}
	defer pool.Close()
	if err := ensureUsersTable(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create users table")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL (pgx)")

	// MongoDB - журнал модерации
	mongoClient, err := connectMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())
	mongoDB := mongoClient.Database(cfg.Mongo.DBName)
	logger.Info().Msg("Successfully connected to MongoDB")

	// Redis - кеш списка товаров и одобренных комментариев
	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// Kafka producer - события о комментариях в топик comment_events
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Msg("Successfully initialized Kafka producer")

	// Слой репозиториев
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	moderationLog := repository.NewModerationLogRepository(mongoDB)

	// Бизнес-логика
	jwtManager := util.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenDuration)
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo, commentRepo, redisClient)
	commentService := service.NewCommentService(commentRepo, productRepo, moderationLog, redisClient, kafkaProducer)

	// HTTP handlers и маршруты
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService, commentService)
	commentHandler := handler.NewCommentHandler(commentService)
	authMiddleware := handler.NewAuthMiddleware(jwtManager)

	router := handler.SetupRoutes(authHandler, productHandler, commentHandler, authMiddleware)

	// Периодическое обновление метрики очереди модерации
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		count, err := commentService.CountPending(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to refresh moderation queue metric")
			return
		}
		metrics.ModerationQueueSize.Set(float64(count))
	}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to schedule moderation queue metric job")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Production-ready настройки HTTP сервера с таймаутами
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting ReviewHub")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown по SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down ReviewHub...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("ReviewHub stopped gracefully")
}

// connectGorm открывает GORM-соединение с повторными попытками
// При запуске в Docker PostgreSQL может быть еще не готов
func connectGorm(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectPool открывает pgx connection pool с production настройками
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func connectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, mongooptions.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// ensureUsersTable создает таблицу пользователей, если ее еще нет
func ensureUsersTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(150) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}
