package middleware

import (
	"net/http/httptest"
	"testing"

	"aikit/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsAdminEmail(t *testing.T) {
	checker := NewAdminChecker([]string{"Ops@Example.com", " admin@example.com ", ""})

	assert.True(t, checker.IsAdminEmail("ops@example.com"))
	assert.True(t, checker.IsAdminEmail("ADMIN@EXAMPLE.COM"))
	assert.False(t, checker.IsAdminEmail("user@example.com"))
	assert.False(t, checker.IsAdminEmail(""))
}

func adminTestApp(checker *AdminChecker, claims *models.UserClaims) *fiber.App {
	app := fiber.New()
	app.Get("/admin", func(c *fiber.Ctx) error {
		if claims != nil {
			c.Locals("claims", claims)
		}
		return c.Next()
	}, checker.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	checker := NewAdminChecker([]string{"admin@example.com"})

	t.Run("no claims", func(t *testing.T) {
		app := adminTestApp(checker, nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-admin email", func(t *testing.T) {
		app := adminTestApp(checker, &models.UserClaims{UserID: 1, Email: "user@example.com"})
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin email", func(t *testing.T) {
		app := adminTestApp(checker, &models.UserClaims{UserID: 1, Email: "admin@example.com"})
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
