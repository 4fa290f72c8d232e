package config

import (
	"log"

	"github.com/CHgh0sts/LotoSocket/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB connects to postgres and runs migrations.
func ConnectDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Party{},
		&models.Carton{},
		&models.Ban{},
		&models.Category{},
		&models.Pub{},
	); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	log.Println("✅ Database migration completed")
	return db
}
