package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/models"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	KafkaAddress  string
	ESURL         string
	ESUser        string
	ESPassword    string
	CloudinaryURL string
	SeedEmail     string
	SeedPassword  string
	LogLevel      string
	ErrorLogFile  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		Port:          getenvDefault("PORT", "5000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getenvDefault("JWT_SECRET", "your_secret_key_change_me"),
		KafkaAddress:  os.Getenv("KAFKA_ADDRESS"),
		ESURL:         os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		SeedEmail:     getenvDefault("SEED_ADMIN_EMAIL", "vivek@furnidecor.com"),
		SeedPassword:  getenvDefault("SEED_ADMIN_PASSWORD", "vivek123"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		ErrorLogFile:  getenvDefault("ERROR_LOG_FILE", "server_error.log"),
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set in environment")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.CallbackRequest{},
		&models.User{},
		&models.Settings{},
	)
}
