package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/knowyourcountry/community-backend/models"
)

var DB *gorm.DB

func dsn() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}

func InitDB() {
	db, err := gorm.Open(postgres.Open(dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("cannot connect to database: ", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("cannot get sql.DB from gorm: ", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	err = DB.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.School{},
		&models.Activity{},
		&models.Volunteer{},
		&models.Contribution{},
		&models.Article{},
		&models.ArticleComment{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizChoice{},
		&models.QuizAttempt{},
		&models.QuizAnswer{},
		&models.Media{},
		&models.MediaRating{},
		&models.MediaComment{},
		&models.MediaCollection{},
		&models.MediaCollectionItem{},
		&models.Report{},
		&models.ReportAttachment{},
		&models.ReportMetric{},
		&models.PerformanceReport{},
		&models.ReportSection{},
	)
	if err != nil {
		log.Fatal("autoMigrate failed: ", err)
	}
	log.Println("postgreSQL connected & migrated successfully!")
}

// ConnectDatabase returns a fresh DB handle (used by one-off tooling).
func ConnectDatabase() (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
}
