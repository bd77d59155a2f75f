package database

import (
	"log"

	"github.com/hostflow/hostflow-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Property{},
		&models.Booking{},
		&models.Guest{},
		&models.Transaction{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Reconciliation scans a property's platform-sourced bookings on every sync.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_property_source
		ON bookings (property_id, source)
	`)

	return db
}
