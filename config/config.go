package config

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type MailerConfig struct {
	APIKey      string
	FromName    string
	FromAddress string
}

func LoadMailerConfig() (*MailerConfig, error) {
	return &MailerConfig{
		APIKey:      os.Getenv("MAILERSEND_API_KEY"),
		FromName:    os.Getenv("EMAIL_FROM_NAME"),
		FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
	}, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Event{}, &models.Admin{}, &models.Ticket{})
	if err != nil {
		return nil, err
	}

	seedEvents(db)
	seedAdmin(db)

	return db, nil
}

func seedEvents(db *gorm.DB) {
	events := []models.Event{
		{Name: "Phnom Penh Festival 2025", Code: "PPF25"},
		{Name: "Cultural Night Experience", Code: "CNX25"},
	}

	for _, event := range events {
		var existing models.Event
		result := db.Where("code = ?", event.Code).First(&existing)
		if result.Error != nil {
			db.Create(&event)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing models.Admin
	if result := db.Where("username = ?", username).First(&existing); result.Error == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}

	db.Create(&models.Admin{Username: username, Password: string(hashed)})
}
