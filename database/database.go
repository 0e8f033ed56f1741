package database

import (
	"linkbio/config"
	"linkbio/internal/domain/analytics"
	"linkbio/internal/domain/blocks"
	"linkbio/internal/domain/profiles"
	"linkbio/internal/domain/users"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	if config.DB_URL == "" {
		zap.L().Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	DB = db

	if err := Migrate(DB); err != nil {
		zap.L().Fatal("auto-migrate failed", zap.Error(err))
	}

	zap.L().Info("connected and migrated")
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&profiles.Profile{},

		// blocks
		&blocks.Block{},
		&blocks.BlockCollection{},

		// analytics
		&analytics.Event{},
	)
}
