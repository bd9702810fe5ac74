package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gcstatus/backend/internal/models"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")
}

// Migrate creates or updates the schema for every model, including the
// polymorphic join tables the assoc store operates on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// users and gamification
		&models.User{}, &models.Wallet{}, &models.TransactionType{}, &models.Transaction{},
		&models.Level{}, &models.Title{}, &models.UserTitle{},
		&models.Mission{}, &models.MissionRequirement{}, &models.UserMission{}, &models.UserMissionProgress{},
		// catalog
		&models.Game{}, &models.Dlc{},
		// reference data
		&models.Tag{}, &models.Genre{}, &models.Category{}, &models.Platform{},
		&models.Developer{}, &models.Publisher{}, &models.Store{}, &models.Critic{},
		&models.Cracker{}, &models.TorrentProvider{}, &models.Language{}, &models.RequirementType{},
		// polymorphic join tables
		&models.Taggable{}, &models.Genreable{}, &models.Categoriable{}, &models.Platformable{},
		&models.Developerable{}, &models.Publisherable{}, &models.Languageable{}, &models.Storeable{},
		&models.Requirementable{}, &models.Criticable{}, &models.Crackable{}, &models.Torrentable{},
		&models.Rewardable{},
	)
}
