package seeders

import (
	"errors"

	"oficina.app/configs/configslog"
	"oficina.app/models"
	"oficina.app/pkg/auth"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	adminUsername        = "admin"
	adminDefaultPassword = "admin123"
)

// SeedAdminUser ensures the bootstrap account exists. The default password
// is only set on first creation.
func SeedAdminUser(db *gorm.DB) error {
	var existing models.User
	result := db.Where("username = ?", adminUsername).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Admin user %q already exists, skipping.", adminUsername)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Failed to check admin user", zap.Error(result.Error))
		return result.Error
	}

	hash, err := auth.HashPassword(adminDefaultPassword)
	if err != nil {
		configslog.Log.Error("Failed to hash admin password", zap.Error(err))
		return err
	}

	admin := models.User{
		Username:     adminUsername,
		PasswordHash: hash,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Failed to create admin user", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Admin user %q created (ID: %d). Change the default password.", adminUsername, admin.ID)
	return nil
}
