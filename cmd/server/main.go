package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inventoryhttp "github.com/myduka/myduka-backend/internal/inventory/delivery/http"
	inventoryrepo "github.com/myduka/myduka-backend/internal/inventory/repository"
	inventorycommand "github.com/myduka/myduka-backend/internal/inventory/usecase/command"
	invitationhttp "github.com/myduka/myduka-backend/internal/invitation/delivery/http"
	invitationrepo "github.com/myduka/myduka-backend/internal/invitation/repository"
	"github.com/myduka/myduka-backend/internal/middleware"
	producthttp "github.com/myduka/myduka-backend/internal/product/delivery/http"
	productrepo "github.com/myduka/myduka-backend/internal/product/repository"
	reporthttp "github.com/myduka/myduka-backend/internal/report/delivery/http"
	reportrepo "github.com/myduka/myduka-backend/internal/report/repository"
	storehttp "github.com/myduka/myduka-backend/internal/store/delivery/http"
	storerepo "github.com/myduka/myduka-backend/internal/store/repository"
	supplyhttp "github.com/myduka/myduka-backend/internal/supply/delivery/http"
	supplyrepo "github.com/myduka/myduka-backend/internal/supply/repository"
	supplycommand "github.com/myduka/myduka-backend/internal/supply/usecase/command"
	transactionhttp "github.com/myduka/myduka-backend/internal/transaction/delivery/http"
	transactionrepo "github.com/myduka/myduka-backend/internal/transaction/repository"
	transactioncommand "github.com/myduka/myduka-backend/internal/transaction/usecase/command"
	userhttp "github.com/myduka/myduka-backend/internal/user/delivery/http"
	userrepo "github.com/myduka/myduka-backend/internal/user/repository"
	"github.com/myduka/myduka-backend/kafka"
	"github.com/myduka/myduka-backend/pkg/auth"
	"github.com/myduka/myduka-backend/pkg/config"
	"github.com/myduka/myduka-backend/pkg/database"
	"github.com/myduka/myduka-backend/pkg/logger"
	"github.com/myduka/myduka-backend/pkg/mailer"
	"github.com/myduka/myduka-backend/pkg/tracing"
)

const serviceName = "myduka-backend"

func main() {
	cfg := config.Load()

	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting MyDuka backend")

	// Tracing
	tp, err := tracing.InitTracer(serviceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories
	users := userrepo.NewGormUserRepositoryWithTracing(db)
	if err := users.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run user migrations")
	}
	stores := storerepo.NewGormStoreRepository(db)
	if err := stores.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run store migrations")
	}
	products := productrepo.NewGormProductRepository(db)
	if err := products.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run product migrations")
	}
	inventory, err := inventoryrepo.NewGormInventoryRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run inventory migrations")
	}
	transactions, err := transactionrepo.NewGormTransactionRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run transaction migrations")
	}
	supplies, err := supplyrepo.NewGormSupplyRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run supply request migrations")
	}
	invitations, err := invitationrepo.NewGormInvitationRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run invitation migrations")
	}
	reports := reportrepo.NewGormReportRepository(db)

	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis: token blacklist and login rate limiting. Falls back to an
	// in-memory blacklist when Redis is unreachable.
	var blacklist auth.Blacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable, using in-memory token blacklist")
		redisClient = nil
		blacklist = auth.NewMemoryBlacklist()
	} else {
		blacklist = auth.NewRedisBlacklist(redisClient)
	}
	cancelPing()

	// Kafka
	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if publisher != nil {
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, serviceName, []string{kafka.TopicSaleRecorded})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to create Kafka consumer")
		} else {
			consumer.RegisterHandler(kafka.EventTypeSaleRecorded, kafka.NewLowStockAlertHandler(0))
			if err := consumer.Start(consumerCtx); err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to start Kafka consumer")
			}
			defer consumer.Close()
		}
	}

	// Mail
	var mail mailer.Mailer = mailer.NoopMailer{}
	if cfg.Mail.Username != "" {
		mail = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		logger.Logger.Warn().Msg("SMTP not configured, invitation mail disabled")
	}

	// Auth plumbing
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	authn := middleware.NewAuthenticator(tokens, blacklist, users)
	metrics := middleware.NewMetrics()
	loginLimiter := middleware.NewRateLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Event publishers stay nil interfaces when Kafka is not configured
	var stockEvents inventorycommand.EventPublisher
	var saleEvents transactioncommand.EventPublisher
	var supplyEvents supplycommand.EventPublisher
	if publisher != nil {
		stockEvents = publisher
		saleEvents = publisher
		supplyEvents = publisher
	}

	// Handlers
	userHandler := userhttp.NewUserHandler(users, stores, tokens, blacklist)
	invitationHandler := invitationhttp.NewInvitationHandler(invitations, users, mail, cfg.FrontendURL, cfg.JWT.InvitationExpiry)
	storeHandler := storehttp.NewStoreHandler(stores)
	productHandler := producthttp.NewProductHandler(products, users)
	inventoryHandler := inventoryhttp.NewInventoryHandler(inventory, products, stockEvents)
	transactionHandler := transactionhttp.NewTransactionHandler(transactions, inventory, saleEvents)
	supplyHandler := supplyhttp.NewSupplyHandler(supplies, products, supplyEvents)
	reportHandler := reporthttp.NewReportHandler(reports)

	// Router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router, authn, metrics, loginLimiter.Limit)
	invitationHandler.RegisterRoutes(router, authn, metrics)
	storeHandler.RegisterRoutes(router, authn, metrics)
	productHandler.RegisterRoutes(router, authn, metrics)
	inventoryHandler.RegisterRoutes(router, authn, metrics)
	transactionHandler.RegisterRoutes(router, authn, metrics)
	supplyHandler.RegisterRoutes(router, authn, metrics)
	reportHandler.RegisterRoutes(router, authn, metrics)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", healthCheck(sqlDB)).Methods("GET")
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"service": serviceName, "status": "ok"})
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(c.Handler(router), "http.server"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
