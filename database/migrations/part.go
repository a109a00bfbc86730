package migrations

import (
	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigratePartsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating parts table...")
	if err := db.AutoMigrate(&models.Part{}); err != nil {
		configslog.Log.Error("Failed to migrate parts table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Parts table migrated successfully")
	return nil
}
