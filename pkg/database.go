package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/critiq-labs/review-service/internal/config"
	"github.com/critiq-labs/review-service/internal/models"
)

// InitDatabase opens the postgres connection and migrates the schema. Unique
// and check constraints declared on the models are created here; they are the
// authority for conflict detection under concurrent writes.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logMode := logger.Warn
	if cfg.Environment != "production" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		// Map driver duplicate-key errors to gorm.ErrDuplicatedKey so
		// services can surface them as conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.SetupJoinTable(&models.Title{}, "Genres", &models.GenreTitle{}); err != nil {
		return nil, fmt.Errorf("failed to set up genre join table: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
