package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oficina.app/database"
	"oficina.app/middleware"
	"oficina.app/models"
	"oficina.app/pkg/auth"
	"oficina.app/pkg/events"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

// newTestApp mounts the client routes behind auth, the way routes.SetupRoutes does.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrationsInOrder(db))

	handler := NewClientHandler(services.NewClientService(db, events.NewBus()))

	app := fiber.New()
	api := app.Group("/api", middleware.RequireAuth(testSecret))
	clients := api.Group("/clients")
	clients.Post("/", handler.Create)
	clients.Get("/", handler.List)
	clients.Get("/:id", handler.Get)
	clients.Put("/:id", handler.Update)
	clients.Delete("/:id", handler.Delete)
	return app, db
}

func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	token, err := auth.MakeToken(1, "admin", testSecret, time.Hour)
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestClientRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/clients/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClientCreateAndGet(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/clients/", fiber.Map{
		"name":     "Maria Souza",
		"document": "12345678900",
		"phone":    "11 98888-0000",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Client
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.ClientIndividual, created.Kind)

	resp, err = app.Test(authedRequest(t, http.MethodGet, fmt.Sprintf("/api/clients/%d", created.ID), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Client
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, "Maria Souza", fetched.Name)
}

func TestClientCreateValidationMapsTo400(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/clients/", fiber.Map{
		"document": "12345678900",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClientDuplicateDocumentMapsTo400(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&models.Client{Name: "Ana", Kind: models.ClientIndividual, Document: "999"}).Error)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/clients/", fiber.Map{
		"name":     "Outra Ana",
		"document": "999",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClientNotFoundMapsTo404(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/clients/12345", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodDelete, "/api/clients/12345", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
