package configsdatabase

import (
	"time"

	"oficina.app/configs"
	"oficina.app/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the postgres connection and configures the pool.
func InitDB(cfg *configs.Config) {
	gormLogLevel := logger.Warn
	if cfg.AppEnv == "development" {
		gormLogLevel = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Failed to access underlying sql.DB", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = conn
	configslog.SLog.Infof("Database connection established: %s@%s/%s", cfg.DBUser, cfg.DBHost, cfg.DBName)
}

// GetDB returns the shared connection. InitDB must have run first.
func GetDB() *gorm.DB {
	return db
}

// SetDB overrides the shared connection. Used by tests to swap in sqlite.
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB closes the underlying pool.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Failed to access sql.DB on close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Failed to close database connection", zap.Error(err))
	}
}
