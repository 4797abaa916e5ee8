// Command healthcheck probes the database and cache connections and exits
// non-zero if either is unreachable. It is an operational utility only and
// plays no part in the request path.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"user-directory/internal/config"
	"user-directory/pkg/logger"
	redisclient "user-directory/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("healthcheck failed: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Format:      cfg.Logger.Format,
		OutputPath:  "stderr",
		ServiceName: "user-directory-healthcheck",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := gorm.Open(pgdriver.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	l.Info("database reachable", zap.String("host", cfg.DB.Host))

	rdb, err := redisclient.NewClient(redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l)
	if err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	defer func() { _ = rdb.Close() }()

	if err := rdb.Ping(ctx); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	l.Info("redis reachable", zap.String("host", cfg.Redis.Host))

	return nil
}
