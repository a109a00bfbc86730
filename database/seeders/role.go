package seeders

import (
	"errors"

	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedRoles ensures the baseline shop roles exist.
func SeedRoles(db *gorm.DB) error {
	rolesToSeed := []models.Role{
		{Name: "Manager", Description: "Runs the shop and the back office"},
		{Name: "Mechanic", Description: "Works on vehicles"},
		{Name: "Attendant", Description: "Front desk and scheduling"},
	}

	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Seeding shop roles...")

	for _, roleToSeed := range rolesToSeed {
		var existing models.Role
		result := db.Where("name = ?", roleToSeed.Name).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("Role %q already exists, skipping.", roleToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Failed to check role",
				zap.String("role", roleToSeed.Name), zap.Error(result.Error))
			errorOccurred = true
			continue
		}

		if err := db.Create(&roleToSeed).Error; err != nil {
			configslog.Log.Error("Failed to create role",
				zap.String("role", roleToSeed.Name), zap.Error(err))
			errorOccurred = true
			continue
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d new roles seeded.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("All roles already present, nothing seeded.")
	}

	if errorOccurred {
		return errors.New("at least one role failed to seed")
	}
	return nil
}
