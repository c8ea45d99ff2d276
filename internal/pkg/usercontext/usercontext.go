package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"blogium/internal/pkg/policy"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"is_logged_in"`
	IsStaff    bool   `json:"is_staff"`
}

// GetUserContext retrieves the user context from fiber context.
// Returns a default anonymous context if none is set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false, IsStaff: false}
}

// Viewer converts the request's user context into the explicit viewer
// identity the policy and feed layers take as a parameter.
func (uc UserContext) Viewer() policy.Viewer {
	return policy.Viewer{
		ID:              uc.UserID,
		Username:        uc.Username,
		IsAuthenticated: uc.IsLoggedIn,
		IsStaff:         uc.IsStaff,
	}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetUsername returns the current user's username, or empty string if not logged in
func GetUsername(c *fiber.Ctx) string {
	return GetUserContext(c).Username
}
