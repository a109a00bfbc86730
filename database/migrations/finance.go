package migrations

import (
	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFinanceEntriesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating finance_entries table...")
	if err := db.AutoMigrate(&models.FinanceEntry{}); err != nil {
		configslog.Log.Error("Failed to migrate finance_entries table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Finance_entries table migrated successfully")
	return nil
}
