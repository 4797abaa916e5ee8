// Command seed bulk-inserts generated users so pagination and search can
// be exercised against a realistically sized table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"user-directory/internal/adapter/repository/postgres"
	"user-directory/internal/config"
	"user-directory/pkg/logger"
)

var firstNames = []string{
	"Alice", "Amanda", "Bob", "Carol", "David", "Elena", "Frank", "Grace",
	"Henry", "Irene", "John", "Karen", "Liam", "Maria", "Nora", "Oscar",
	"Paula", "Quinn", "Rosa", "Steve", "Tina", "Victor", "Wendy", "Yusuf",
}

var lastNames = []string{
	"Anderson", "Brown", "Clark", "Davis", "Evans", "Garcia", "Harris",
	"Johnson", "King", "Lopez", "Martin", "Nguyen", "Ortiz", "Patel",
	"Reed", "Smith", "Taylor", "Walker", "Young", "Zhang",
}

func main() {
	count := flag.Int("count", 1000, "number of users to insert")
	batch := flag.Int("batch", 1000, "insert batch size")
	flag.Parse()

	if err := run(*count, *batch); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(count, batch int) error {
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
		OutputPath:  cfg.Logger.OutputPath,
		ServiceName: "user-directory-seed",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	db, err := gorm.Open(pgdriver.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&postgres.UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	l.Info("seeding users", zap.Int("count", count), zap.Int("batch", batch))

	rows := make([]postgres.UserSchema, count)
	for i := range rows {
		name := fmt.Sprintf("%s %s",
			firstNames[i%len(firstNames)],
			lastNames[(i/len(firstNames))%len(lastNames)],
		)
		rows[i] = postgres.UserSchema{
			Name:  name,
			Email: fmt.Sprintf("%s%d@example.com", strings.ToLower(firstNames[i%len(firstNames)]), i),
		}
	}

	if err := db.CreateInBatches(rows, batch).Error; err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}

	l.Info("seed complete", zap.Int("inserted", count))
	return nil
}
