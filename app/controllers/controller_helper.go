package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"blogium/internal/pkg/usercontext"
	"blogium/internal/pkg/viewmodel"
)

// bind assembles the render context every page template shares, merged
// with the page-specific entries.
func bind(c *fiber.Ctx, title string, extra fiber.Map) fiber.Map {
	userCtx := usercontext.GetUserContext(c)

	layout := viewmodel.Layout{
		Title:      title,
		IsLoggedIn: userCtx.IsLoggedIn,
		IsStaff:    userCtx.IsStaff,
		Username:   userCtx.Username,
		CSRFToken:  csrfToken(c),
		Flash:      flash.Get(c),
	}
	return layout.Bind(extra)
}

// csrfToken reads the token set by the CSRF middleware; empty when the
// route is not CSRF-protected.
func csrfToken(c *fiber.Ctx) string {
	if token, ok := c.Locals("csrf").(string); ok {
		return token
	}
	return ""
}

// parseUintParam parses a numeric route parameter like :id.
func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

// queryPage reads the 1-indexed ?page= parameter; out-of-range values are
// clamped later by the feed service.
func queryPage(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}
