package migrations

import (
	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateUploadsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating uploads table...")
	if err := db.AutoMigrate(&models.Upload{}); err != nil {
		configslog.Log.Error("Failed to migrate uploads table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Uploads table migrated successfully")
	return nil
}
