package middleware

import (
	"strings"

	"aikit/internal/models"
	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminChecker decides whether an email belongs to an administrator.
type AdminChecker struct {
	emails map[string]struct{}
}

// NewAdminChecker builds a checker from an email allow-list. Entries are
// matched case-insensitively.
func NewAdminChecker(emails []string) *AdminChecker {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return &AdminChecker{emails: set}
}

// IsAdminEmail reports whether the email is on the allow-list.
func (a *AdminChecker) IsAdminEmail(email string) bool {
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// RequireAdmin returns a middleware that rejects requests whose
// authenticated email is not on the admin allow-list. It must run after
// Protected.
func (a *AdminChecker) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok || claims == nil {
			return utils.Unauthorized(c, "authentication required")
		}
		if !a.IsAdminEmail(claims.Email) {
			return utils.Forbidden(c, "admin access required")
		}
		return c.Next()
	}
}
