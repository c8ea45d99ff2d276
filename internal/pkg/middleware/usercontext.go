package middleware

import (
	"github.com/gofiber/fiber/v2"

	"blogium/internal/pkg/session"
	"blogium/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request. Handlers read the viewer identity from here and pass it down
// explicitly; nothing below the controller layer touches the session.
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := usercontext.UserContext{IsLoggedIn: false, IsStaff: false}

	store := session.GetSessionStore()
	if store == nil {
		c.Locals(usercontext.KeyUserContext, anonymous)
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		c.Locals(usercontext.KeyUserContext, anonymous)
		return c.Next()
	}

	userID, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		c.Locals(usercontext.KeyUserContext, anonymous)
		return c.Next()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	isStaff, _ := sess.Get(usercontext.KeyIsStaff).(bool)

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
		IsStaff:    isStaff,
	})

	return c.Next()
}
