package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/config"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

func Connect(cfg config.Config, log *logger.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	log.Info("Running migrations...")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.SkillsProfile{},
		&models.Company{},
		&models.Job{},
		&models.ChatSession{},
		&models.ChatInput{},
		&models.ChatOutput{},
		&models.GenerationRequest{},
		&models.CoverLetter{},
		&models.UserCredits{},
		&models.Tracking{},
		&models.AICallLog{},
	); err != nil {
		return nil, fmt.Errorf("auto migration: %w", err)
	}

	log.Info("Database connection established")
	return db, nil
}
