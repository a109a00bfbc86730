// Package routes wires handlers, middleware and the socket gateway onto the
// Fiber app.
package routes

import (
	"time"

	"oficina.app/configs"
	"oficina.app/handlers"
	"oficina.app/middleware"
	"oficina.app/pkg/auth"
	"oficina.app/pkg/events"
	"oficina.app/pkg/metrics"
	"oficina.app/services"
	"oficina.app/ws"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes builds every service, handler and route on app. Login, /metrics
// and the static uploads are public; /ws wants a token query param and
// everything under /api needs a bearer token.
func SetupRoutes(app *fiber.App, db *gorm.DB, bus *events.Bus, cfg *configs.Config) {
	metrics.Register()

	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService(db, bus))
	clientHandler := handlers.NewClientHandler(services.NewClientService(db, bus))
	vehicleHandler := handlers.NewVehicleHandler(services.NewVehicleService(db, bus))
	orderHandler := handlers.NewOrderHandler(services.NewOrderService(db, bus))
	itemHandler := handlers.NewOrderItemHandler(services.NewOrderItemService(db, bus))
	partHandler := handlers.NewPartHandler(services.NewPartService(db, bus))
	financeHandler := handlers.NewFinanceHandler(services.NewFinanceService(db, bus))
	employeeHandler := handlers.NewEmployeeHandler(services.NewEmployeeService(db, bus))
	roleHandler := handlers.NewRoleHandler(services.NewRoleService(db, bus))
	uploadHandler := handlers.NewUploadHandler(services.NewUploadService(db, bus, cfg.UploadDir))
	userHandler := handlers.NewUserHandler(services.NewUserService(db, bus,
		cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute))
	reportHandler := handlers.NewReportHandler(services.NewReportService(db, cfg.ExportDir))

	app.Use(middleware.CountRequests())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Static("/uploads", cfg.UploadDir)

	hub := ws.NewHub(bus)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		// browsers cannot set headers on websocket handshakes
		if _, err := auth.ParseToken(c.Query("token"), cfg.JWTSecret); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(hub.Handler()))

	app.Post("/auth/login", userHandler.Login)

	api := app.Group("/api", middleware.RequireAuth(cfg.JWTSecret))

	api.Get("/auth/me", userHandler.Me)
	api.Post("/auth/change-password", userHandler.ChangePassword)

	appointments := api.Group("/appointments")
	appointments.Get("/", appointmentHandler.List)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/today", appointmentHandler.Today)
	appointments.Get("/upcoming", appointmentHandler.Upcoming)
	appointments.Get("/range", appointmentHandler.ByRange)
	appointments.Get("/search", appointmentHandler.Search)
	appointments.Get("/stats", appointmentHandler.Stats)
	appointments.Get("/client/:id", appointmentHandler.ByClient)
	appointments.Get("/employee/:id", appointmentHandler.ByEmployee)
	appointments.Get("/status/:status", appointmentHandler.ByStatus)
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Patch("/:id/status", appointmentHandler.SetStatus)
	appointments.Delete("/:id", appointmentHandler.Delete)

	clients := api.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/document/:document", clientHandler.GetByDocument)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	vehicles := api.Group("/vehicles")
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/plate/:plate", vehicleHandler.GetByPlate)
	vehicles.Get("/client/:id", vehicleHandler.ByClient)
	vehicles.Get("/:id", vehicleHandler.Get)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)

	orders := api.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/client/:id", orderHandler.ByClient)
	orders.Get("/status/:status", orderHandler.ByStatus)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.SetStatus)
	orders.Post("/:id/invoice", orderHandler.Invoice)
	orders.Post("/:id/recalculate", orderHandler.Recalculate)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Get("/:id/items", itemHandler.ByOrder)
	orders.Delete("/:id/items", itemHandler.DeleteByOrder)

	items := api.Group("/order-items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/kind/:kind", itemHandler.ByKind)
	items.Get("/kind/:kind/count", itemHandler.CountByKind)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	parts := api.Group("/parts")
	parts.Get("/", partHandler.List)
	parts.Post("/", partHandler.Create)
	parts.Get("/low-stock", partHandler.LowStock)
	parts.Get("/stats", partHandler.Stats)
	parts.Get("/code/:code", partHandler.GetByCode)
	parts.Get("/supplier/:id", partHandler.BySupplier)
	parts.Get("/:id", partHandler.Get)
	parts.Put("/:id", partHandler.Update)
	parts.Post("/:id/movements", partHandler.Move)
	parts.Delete("/:id", partHandler.Delete)

	finance := api.Group("/finance")
	finance.Get("/", financeHandler.List)
	finance.Post("/", financeHandler.Create)
	finance.Get("/totals", financeHandler.Totals)
	finance.Get("/totals/methods", financeHandler.TotalsByMethod)
	finance.Get("/kind/:kind", financeHandler.ByKind)
	finance.Get("/order/:id", financeHandler.ByOrder)
	finance.Get("/:id", financeHandler.Get)
	finance.Put("/:id", financeHandler.Update)
	finance.Delete("/:id", financeHandler.Delete)

	employees := api.Group("/employees")
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Patch("/:id/role", employeeHandler.SetRole)
	employees.Delete("/:id", employeeHandler.Delete)

	roles := api.Group("/roles")
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Get("/:id", roleHandler.Get)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	uploads := api.Group("/uploads")
	uploads.Get("/", uploadHandler.List)
	uploads.Post("/", uploadHandler.Create)
	uploads.Get("/recent", uploadHandler.Recent)
	uploads.Get("/stats", uploadHandler.Stats)
	uploads.Get("/order/:id", uploadHandler.ByOrder)
	uploads.Get("/client/:id", uploadHandler.ByClient)
	uploads.Get("/:id", uploadHandler.Get)
	uploads.Delete("/:id", uploadHandler.Delete)

	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/stats", userHandler.Stats)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/active", userHandler.SetActive)
	users.Delete("/:id", userHandler.Delete)

	reports := api.Group("/reports")
	reports.Get("/orders", reportHandler.Orders)
	reports.Get("/orders/export", reportHandler.ExportOrders)
	reports.Get("/revenue", reportHandler.Revenue)
	reports.Get("/productivity", reportHandler.Productivity)
	reports.Get("/productivity/export", reportHandler.ExportProductivity)
}
