package config

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/hash"
	"github.com/vivek-boini/furniture/internal/models"
)

const defaultSeedEmail = "vivek@furnidecor.com"

// SeedSuperAdmin creates the bootstrap superadmin account if no user
// with the seed email exists yet.
func SeedSuperAdmin(db *gorm.DB, cfg *Config, l *slog.Logger) error {
	var existing models.User
	err := db.Where("email = ?", cfg.SeedEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed lookup failed: %w", err)
	}

	pwHash, err := hash.HashPassword(cfg.SeedPassword)
	if err != nil {
		return fmt.Errorf("seed password hash failed: %w", err)
	}

	admin := models.User{
		Name:         "Vivek",
		Email:        cfg.SeedEmail,
		PasswordHash: pwHash,
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed create failed: %w", err)
	}

	if cfg.SeedEmail == defaultSeedEmail {
		l.Warn("superadmin seeded with default credentials, rotate them immediately",
			"email", cfg.SeedEmail)
	} else {
		l.Info("superadmin seeded", "email", cfg.SeedEmail)
	}
	return nil
}
