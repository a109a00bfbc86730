package migrations

import (
	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateEmployeesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating roles & employees tables...")
	if err := db.AutoMigrate(&models.Role{}, &models.Employee{}); err != nil {
		configslog.Log.Error("Failed to migrate roles & employees tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Roles & employees tables migrated successfully")
	return nil
}
