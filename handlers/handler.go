// Package handlers exposes the services over Fiber as a JSON API.
package handlers

import (
	"strconv"
	"time"

	"oficina.app/configs/configslog"
	"oficina.app/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, missing records 404, anything else 500 with the cause
// logged but not leaked.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		configslog.Log.Error("Unhandled service error",
			zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

// paramID parses the :id route parameter.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("invalid id")
	}
	return uint(id), nil
}

// queryTime parses an optional RFC3339 or date-only query parameter.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.NewValidation("invalid %s, want RFC3339 or YYYY-MM-DD", key)
}
