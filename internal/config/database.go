package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/ats-checker/internal/models"
)

// InitDatabase returns nil without error when the database is disabled.
func InitDatabase(cfg *Config, zlog *zap.Logger) (*gorm.DB, error) {
	if !cfg.Database.Enabled {
		return nil, nil
	}

	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	zlog.Info("✅ Database connected successfully", zap.String("host", cfg.Database.Host), zap.String("dbname", cfg.Database.DBName))

	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	zlog.Info("✅ Database migration completed")

	return db, nil
}
