package config

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/hash"
	"github.com/vivek-boini/furniture/internal/logging"
	"github.com/vivek-boini/furniture/internal/models"
)

func TestSeedSuperAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	cfg := &Config{SeedEmail: "root@example.com", SeedPassword: "bootstrap"}
	l := logging.New("error")

	require.NoError(t, SeedSuperAdmin(db, cfg, l))

	var user models.User
	require.NoError(t, db.Where("email = ?", cfg.SeedEmail).First(&user).Error)
	require.Equal(t, models.RoleSuperAdmin, user.Role)
	require.True(t, hash.CheckPassword(user.PasswordHash, "bootstrap"))

	// Running again must not create a second account.
	require.NoError(t, SeedSuperAdmin(db, cfg, l))

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(1), count)
}
