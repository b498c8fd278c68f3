package middleware

import (
	"context"
	"strings"

	"aikit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TokenVersionChecker reports the current token version of a user.
// Tokens carrying an older version have been revoked by logout or a
// password change.
type TokenVersionChecker interface {
	GetUserTokenVersion(ctx context.Context, userID uint) (int, error)
}

// Protected returns a middleware that requires a valid Bearer access token.
// On success the parsed claims are stored in c.Locals under "claims" and the
// user id under "userID".
func Protected(versions TokenVersionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.Unauthorized(c, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.Unauthorized(c, "invalid authorization header")
		}

		_, claims, err := utils.ParseToken(parts[1])
		if err != nil {
			return utils.Unauthorized(c, "invalid or expired token")
		}

		current, err := versions.GetUserTokenVersion(c.UserContext(), claims.UserID)
		if err != nil {
			return utils.Unauthorized(c, "invalid or expired token")
		}
		if claims.TokenVersion != current {
			return utils.Unauthorized(c, "token has been revoked")
		}

		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		return c.Next()
	}
}
