// Package database runs schema migrations and seeders inside a single
// transaction.
package database

import (
	"oficina.app/configs/configslog"
	"oficina.app/database/migrations"
	"oficina.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed requested, nothing to do.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Failed to start database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Database initialization panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Rolling back after initialization error.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrations failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrations completed.")
	} else {
		configslog.SLog.Info("Migrate not requested, skipping migrations.")
	}

	if seed {
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeders completed.")
	} else {
		configslog.SLog.Info("Seed not requested, skipping seeders.")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("Database initialization finished successfully")
}

// RunMigrationsInOrder migrates tables respecting foreign key dependencies.
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateEmployeesTables(db); err != nil {
		return err
	}
	if err := migrations.MigrateUsersTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateClientsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateVehiclesTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateAppointmentsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateOrdersTables(db); err != nil {
		return err
	}
	if err := migrations.MigratePartsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateFinanceEntriesTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateUploadsTable(db); err != nil {
		return err
	}
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	if err := seeders.SeedRoles(db); err != nil {
		return err
	}
	if err := seeders.SeedAdminUser(db); err != nil {
		return err
	}
	return nil
}
