package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogium/internal/pkg/middleware"
	"blogium/internal/pkg/usercontext"
)

func profileEditApp(uc usercontext.UserContext, users *stubUserRepo) *fiber.App {
	ctrl := NewUserController(users)
	return newTestApp(uc, func(app *fiber.App) {
		app.Get("/profile/:username/edit", middleware.RequireAuth, ctrl.HandleProfileEdit)
		app.Post("/profile/:username/edit", middleware.RequireAuth, ctrl.HandleProfileEdit)
	})
}

func TestProfileEditRendersOwnForm(t *testing.T) {
	users := newStubUserRepo(existingUser(5, "alice", "alice@example.com"))
	app := profileEditApp(loggedIn(5, "alice"), users)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile/alice/edit", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfileEditForeignUsernameBouncesToOwnPage(t *testing.T) {
	users := newStubUserRepo(
		existingUser(5, "alice", "alice@example.com"),
		existingUser(6, "bob", "bob@example.com"),
	)
	app := profileEditApp(loggedIn(5, "alice"), users)

	// The username segment never selects the target; only the session does
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile/bob/edit", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/alice/edit", resp.Header.Get("Location"))

	resp, err = app.Test(formRequest("/profile/bob/edit", url.Values{
		"first_name": {"Hijacked"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/alice/edit", resp.Header.Get("Location"))
	assert.Empty(t, users.users[6].FirstName)
}

func TestProfileEditUpdatesSessionUser(t *testing.T) {
	users := newStubUserRepo(existingUser(5, "alice", "alice@example.com"))
	app := profileEditApp(loggedIn(5, "alice"), users)

	resp, err := app.Test(formRequest("/profile/alice/edit", url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get("Location"))

	assert.Equal(t, "Alice", users.users[5].FirstName)
	assert.Equal(t, "Liddell", users.users[5].LastName)
}

func TestProfileEditRequiresLogin(t *testing.T) {
	users := newStubUserRepo(existingUser(5, "alice", "alice@example.com"))
	app := profileEditApp(usercontext.UserContext{}, users)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile/alice/edit", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
