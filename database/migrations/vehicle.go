package migrations

import (
	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateVehiclesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating vehicles table...")
	if err := db.AutoMigrate(&models.Vehicle{}); err != nil {
		configslog.Log.Error("Failed to migrate vehicles table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Vehicles table migrated successfully")
	return nil
}
