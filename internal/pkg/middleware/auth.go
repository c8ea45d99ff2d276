package middleware

import (
	"github.com/gofiber/fiber/v2"

	"blogium/internal/pkg/constants"
	"blogium/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; unauthenticated mutation
// attempts are redirected to the authentication entry point, never shown a
// permission error.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.GetUserContext(c).IsLoggedIn {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireStaff ensures a logged-in staff member; redirects otherwise.
func RequireStaff(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	if !userCtx.IsStaff {
		return c.Redirect(constants.PublicRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}
