// Package middleware holds the Fiber middleware shared across routes.
package middleware

import (
	"strings"

	"oficina.app/pkg/auth"
	"oficina.app/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "auth_claims"

// RequireAuth validates the Authorization bearer token and stores its claims
// on the request context.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth, or nil.
func ClaimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}

// CountRequests records one metric sample per handled request.
func CountRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		metrics.IncHTTP(c.Method(), c.Route().Path)
		return err
	}
}
