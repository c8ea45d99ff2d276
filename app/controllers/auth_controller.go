package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/app/repository"
	"blogium/internal/pkg/session"
	"blogium/internal/pkg/usercontext"
)

// AuthController serves registration, login and logout.
type AuthController struct {
	users repository.UserRepository
}

// NewAuthController creates a new auth controller with its repository
func NewAuthController(users repository.UserRepository) *AuthController {
	return &AuthController{users: users}
}

// HandleLogin renders the login form and opens a session
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/login", bind(c, "Log in", nil))
	}

	fm := fiber.Map{
		"type": "error",
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := ac.users.GetByUsername(c.FormValue("username"))
	if err != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect("/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Username)
	sess.Set(usercontext.KeyIsStaff, user.IsStaff())

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back, " + user.Username,
	}

	return flash.WithSuccess(c, fm).Redirect("/profile/" + user.Username)
}

// HandleLogout destroys the session
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "You are logged out",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandleRegister renders the registration form and creates the account
func (ac *AuthController) HandleRegister(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/register", bind(c, "Sign up", nil))
	}

	fm := fiber.Map{
		"type": "error",
	}

	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if password != c.FormValue("password_confirm") {
		fm["message"] = "The passwords do not match"

		return flash.WithError(c, fm).Redirect("/register")
	}

	if _, err := ac.users.GetByUsername(username); err == nil {
		fm["message"] = "This username is already taken"

		return flash.WithError(c, fm).Redirect("/register")
	}
	if _, err := ac.users.GetByEmail(email); err == nil {
		fm["message"] = "This email address is already registered"

		return flash.WithError(c, fm).Redirect("/register")
	}

	user, err := models.CreateUser(username, email, password)
	if err != nil {
		fm["message"] = err.Error()

		return flash.WithError(c, fm).Redirect("/register")
	}

	if err := ac.users.Create(user); err != nil {
		// Two signups can race past the lookups; the unique index decides
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			fm["message"] = "This username or email address is already registered"
		} else {
			fm["message"] = "Could not create the account"
		}

		return flash.WithError(c, fm).Redirect("/register")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Your account was created, you can log in now",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// Global auth controller instance
var authController *AuthController

// InitializeAuthController initializes the global auth controller
func InitializeAuthController() {
	repos := repository.GetGlobalRepositories()
	authController = NewAuthController(repos.User)
}

// GetAuthController returns the global auth controller instance
func GetAuthController() *AuthController {
	if authController == nil {
		InitializeAuthController()
	}
	return authController
}
