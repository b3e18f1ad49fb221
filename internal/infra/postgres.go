package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"sojourn/internal/config"
	"sojourn/internal/models/db_models"
)

func InitPostgresql(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.UserProfile{},
		&db_models.PasswordResetToken{},
		&db_models.Trip{},
		&db_models.TripShare{},
		&db_models.TripImage{},
		&db_models.Location{},
		&db_models.Activity{},
		&db_models.ActivityWeather{},
		&db_models.Friendship{},
		&db_models.Media{},
	); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
