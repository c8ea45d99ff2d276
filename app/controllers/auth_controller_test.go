package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/internal/pkg/usercontext"
)

func authApp(users *stubUserRepo) *fiber.App {
	ac := NewAuthController(users)
	return newTestApp(usercontext.UserContext{}, func(app *fiber.App) {
		app.Get("/login", ac.HandleLogin)
		app.Post("/login", ac.HandleLogin)
		app.Get("/register", ac.HandleRegister)
		app.Post("/register", ac.HandleRegister)
	})
}

func existingUser(id uint, username, email string) *models.User {
	user := &models.User{ID: id, Username: username, Email: email, Role: models.ROLE_USER}
	_ = user.SetPassword("secret-password")
	return user
}

func TestRegisterCreatesAccount(t *testing.T) {
	users := newStubUserRepo()
	app := authApp(users)

	resp, err := app.Test(formRequest("/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"secret-password"},
		"password_confirm": {"secret-password"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	require.Len(t, users.users, 1)
	created := users.users[1]
	assert.Equal(t, "alice", created.Username)
	assert.True(t, created.CheckPassword("secret-password"))
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	users := newStubUserRepo(existingUser(1, "alice", "alice@example.com"))
	app := authApp(users)

	resp, err := app.Test(formRequest("/register", url.Values{
		"username":         {"alice"},
		"email":            {"other@example.com"},
		"password":         {"secret-password"},
		"password_confirm": {"secret-password"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))
	assert.Len(t, users.users, 1)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	users := newStubUserRepo(existingUser(1, "alice", "alice@example.com"))
	app := authApp(users)

	resp, err := app.Test(formRequest("/register", url.Values{
		"username":         {"alice2"},
		"email":            {"alice@example.com"},
		"password":         {"secret-password"},
		"password_confirm": {"secret-password"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))
	assert.Len(t, users.users, 1)
}

func TestRegisterDuplicateRaceLandsOnUniqueIndex(t *testing.T) {
	// A concurrent signup can pass the lookups; the duplicate-key error
	// from the insert must still come back as a register redirect
	users := newStubUserRepo()
	users.createErr = gorm.ErrDuplicatedKey
	app := authApp(users)

	resp, err := app.Test(formRequest("/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"secret-password"},
		"password_confirm": {"secret-password"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))
	assert.Empty(t, users.users)
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	users := newStubUserRepo()
	app := authApp(users)

	resp, err := app.Test(formRequest("/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"secret-password"},
		"password_confirm": {"something-else"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))
	assert.Empty(t, users.users)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	users := newStubUserRepo(existingUser(1, "alice", "alice@example.com"))
	app := authApp(users)

	resp, err := app.Test(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"wrong-password"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	app := authApp(newStubUserRepo())

	resp, err := app.Test(formRequest("/login", url.Values{
		"username": {"ghost"},
		"password": {"secret-password"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
