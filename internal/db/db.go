package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/config"
	"github.com/ceylonstyle/salon-backend/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.Salon{},
		&models.SalonHours{},
		&models.Service{},
		&models.Staff{},
		&models.Booking{},
		&models.Hairstyle{},
		&models.TryOnSession{},
		&models.Review{},
		&models.Payment{},
		&models.Promotion{},
		&models.Subscription{},
		&models.Notification{},
		&models.Portfolio{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
