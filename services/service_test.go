package services

import (
	"context"
	"testing"

	"oficina.app/database"
	"oficina.app/models"
	"oficina.app/pkg/events"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrationsInOrder(db))
	return db
}

// seedClientAndVehicle inserts the minimum rows most scenarios need.
func seedClientAndVehicle(t *testing.T, db *gorm.DB) (*models.Client, *models.Vehicle) {
	t.Helper()

	client := &models.Client{Name: "Maria Souza", Kind: models.ClientIndividual, Document: "12345678900"}
	require.NoError(t, db.Create(client).Error)

	vehicle := &models.Vehicle{ClientID: client.ID, Brand: "Fiat", Model: "Uno", Year: 2015, Plate: "ABC1D23"}
	require.NoError(t, db.Create(vehicle).Error)
	return client, vehicle
}

func seedEmployee(t *testing.T, db *gorm.DB, name string) *models.Employee {
	t.Helper()

	employee := &models.Employee{Name: name, Active: true}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func testCtx() context.Context { return context.Background() }

func newTestBus() *events.Bus { return events.NewBus() }
