package auth

import (
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the fiber locals key holding the authenticated user.
const UserContextKey = "auth:user"

// Protected returns a middleware that authenticates the request against
// the registry. Backends are tried in registration order; the first one
// that carries a token decides the outcome. A backend whose transport
// carries no token is skipped, a token that reads as no identity falls
// through to the next backend, and a read error rejects the request.
func (a *Authenticator) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := WithRequestOrigin(c.UserContext(), Origin{
			Host: c.IP(),
			Port: c.Port(),
		})

		for _, b := range a.registry.Backends() {
			raw, ok := b.Transport.GetToken(c)
			if !ok {
				continue
			}

			user, err := b.Strategy().ReadToken(ctx, raw, a.manager)
			if err != nil {
				if IsOriginMismatch(err) {
					a.logger.Warn("token presented from foreign origin",
						"backend", b.Name,
						"ip", c.IP(),
						"port", c.Port(),
					)
				}
				return unauthorized(c)
			}

			if user == nil {
				continue
			}

			c.Locals(UserContextKey, user)
			c.SetUserContext(WithUserContext(ctx, user))

			return c.Next()
		}

		return unauthorized(c)
	}
}

// CurrentUser returns the user set by Protected, or nil outside a
// protected route.
func CurrentUser(c *fiber.Ctx) *User {
	user, ok := c.Locals(UserContextKey).(*User)
	if !ok {
		return nil
	}
	return user
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   "Unauthorized",
			"text_code": textCodeTokenInvalid,
		},
	})
}
