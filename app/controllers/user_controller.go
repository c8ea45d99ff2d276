package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"blogium/app/repository"
	"blogium/internal/pkg/session"
	"blogium/internal/pkg/usercontext"
)

// UserController serves the profile settings page. The route carries a
// username segment, but the handler always edits the session user: a
// request for someone else's settings bounces to the viewer's own page.
type UserController struct {
	users repository.UserRepository
}

// NewUserController creates a new user controller with its repository
func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{users: users}
}

func profileEditRoute(username string) string {
	return "/profile/" + username + "/edit"
}

// HandleProfileEdit renders the settings form and updates the account
func (uc *UserController) HandleProfileEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	if c.Params("username") != userCtx.Username {
		return c.Redirect(profileEditRoute(userCtx.Username), fiber.StatusSeeOther)
	}

	user, err := uc.users.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	if c.Method() != fiber.MethodPost {
		return c.Render("users/edit", bind(c, "Edit profile", fiber.Map{
			"User": user,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	user.FirstName = c.FormValue("first_name")
	user.LastName = c.FormValue("last_name")

	if email := c.FormValue("email"); email != "" && email != user.Email {
		if _, err := uc.users.GetByEmail(email); err == nil {
			fm["message"] = "This email address is already registered"

			return flash.WithError(c, fm).Redirect(profileEditRoute(user.Username))
		}
		user.Email = email
	}

	if err := user.Validate(); err != nil {
		fm["message"] = err.Error()

		return flash.WithError(c, fm).Redirect(profileEditRoute(user.Username))
	}

	if err := uc.users.Update(user); err != nil {
		fm["message"] = "Could not update the profile"

		return flash.WithError(c, fm).Redirect(profileEditRoute(user.Username))
	}

	// Keep the session display name in step with the account
	if store := session.GetSessionStore(); store != nil {
		if sess, err := store.Get(c); err == nil {
			sess.Set(usercontext.KeyUsername, user.Username)
			_ = sess.Save()
		}
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Profile updated",
	}

	return flash.WithSuccess(c, fm).Redirect("/profile/" + user.Username)
}

// Global user controller instance
var userController *UserController

// InitializeUserController initializes the global user controller
func InitializeUserController() {
	repos := repository.GetGlobalRepositories()
	userController = NewUserController(repos.User)
}

// GetUserController returns the global user controller instance
func GetUserController() *UserController {
	if userController == nil {
		InitializeUserController()
	}
	return userController
}
