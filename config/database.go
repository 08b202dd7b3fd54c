package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mahber-backend/models"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}

// Migrate creates the household tables and the member sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Member{},
		&models.Spouse{},
		&models.Child{},
		&models.EmergencyContact{},
		&models.NotificationLog{},
	); err != nil {
		return err
	}

	// The member counter must survive restarts and be shared by every
	// instance, so it lives in the database rather than process memory.
	// First issued value is 1000.
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS member_seq START 1000").Error
}
