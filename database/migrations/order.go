package migrations

import (
	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateOrdersTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating service_orders & order_items tables...")
	if err := db.AutoMigrate(&models.ServiceOrder{}, &models.OrderItem{}); err != nil {
		configslog.Log.Error("Failed to migrate service_orders & order_items tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Service_orders & order_items tables migrated successfully")
	return nil
}
