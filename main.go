package main

import (
	"os"
	"os/signal"
	"syscall"

	"oficina.app/configs"
	"oficina.app/configs/configsdatabase"
	"oficina.app/configs/configslog"
	"oficina.app/pkg/events"
	"oficina.app/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()
	if cfg.JWTSecret == "" {
		configslog.Log.Fatal("JWT_SECRET is required")
	}

	configsdatabase.InitDB(cfg)
	defer configsdatabase.CloseDB()

	app := fiber.New(fiber.Config{
		AppName:      "oficina",
		ErrorHandler: fiberErrorHandler,
	})
	app.Use(recover.New())

	bus := events.NewBus()
	routes.SetupRoutes(app, configsdatabase.GetDB(), bus, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Shutting down...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Shutdown failed", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Server stopped", zap.Error(err))
	}
}

func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
