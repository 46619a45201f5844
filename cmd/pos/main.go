package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/welitoonl/tamagochi-pos/internal/auth"
	"github.com/welitoonl/tamagochi-pos/internal/cart"
	"github.com/welitoonl/tamagochi-pos/internal/catalog"
	"github.com/welitoonl/tamagochi-pos/internal/checkout"
	"github.com/welitoonl/tamagochi-pos/internal/httpapi"
	"github.com/welitoonl/tamagochi-pos/internal/publisher"
	"github.com/welitoonl/tamagochi-pos/internal/repository"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	KafkaBrokers    []string
	Postgres        *repository.Credentials
	SeedPassword    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
}

// loadConfig reads the environment. Postgres, Redis and Kafka are optional:
// the terminal runs fully in memory when their addresses are absent.
func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		SeedPassword:    getEnv("SEED_PASSWORD", "123456"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		SessionTTL:      12 * time.Hour,
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if host := getEnv("PG_HOST", ""); host != "" {
		port, err := strconv.Atoi(getEnv("PG_PORT", "5432"))
		if err != nil {
			port = 5432
		}
		cfg.Postgres = &repository.Credentials{
			Host:              host,
			Port:              port,
			User:              getEnv("PG_USER", "postgres"),
			Password:          getEnv("PG_PASSWORD", "postgres"),
			DBName:            getEnv("PG_DBNAME", "tamagochi"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Operator identities. Credentials stay in memory; the profiles table
	// carries no secrets.
	users := auth.NewUserStore()
	if err := auth.SeedUsers(users, cfg.SeedPassword); err != nil {
		log.Fatal("failed to seed users", zap.Error(err))
	}
	sessions := auth.NewSessionStore(cfg.SessionTTL)
	authenticator := auth.NewAuthenticator(users, log)

	var (
		source catalog.Source
		store  checkout.Store
	)
	if cfg.Postgres != nil {
		repo, err := repository.NewRepository(cfg.Postgres, log)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer repo.Close()

		if err := repo.RunMigrations(cfg.Postgres); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		for _, p := range catalog.SeedProducts() {
			if err := repo.InsertProduct(ctx, p); err != nil {
				log.Fatal("failed to seed catalog", zap.Error(err))
			}
		}

		source = repo
		store = repo

		if len(cfg.KafkaBrokers) > 0 {
			poller := publisher.NewOutboxPoller(repo, log, cfg.KafkaBrokers...)
			go poller.Run(ctx)
			log.Info("outbox poller started", zap.Strings("brokers", cfg.KafkaBrokers))
		}
	} else {
		source = catalog.NewMemorySource(catalog.SeedProducts()...)
		store = checkout.NewMemoryStore()
		log.Info("running with in-memory catalog and sales store")
	}

	var cache catalog.CodeCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		cache = catalog.NewRedisCache(client)
		log.Info("code lookup cache enabled", zap.String("redis", cfg.RedisAddr))
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Authenticator:  authenticator,
		Sessions:       sessions,
		Lookup:         catalog.NewLookup(source, cache, log),
		Carts:          cart.NewManager(),
		Checkout:       checkout.NewService(store, log),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("POS terminal starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
