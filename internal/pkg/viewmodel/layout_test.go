package viewmodel

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestLayoutBind(t *testing.T) {
	layout := Layout{
		Title:      "Feed",
		IsLoggedIn: true,
		Username:   "alice",
		CSRFToken:  "tok",
	}

	data := layout.Bind(fiber.Map{"Page": 2})

	assert.Equal(t, "Feed", data["Title"])
	assert.Equal(t, true, data["IsLoggedIn"])
	assert.Equal(t, false, data["IsStaff"])
	assert.Equal(t, "alice", data["Username"])
	assert.Equal(t, "tok", data["CSRFToken"])
	assert.Equal(t, 2, data["Page"])
}

func TestLayoutBindPageEntriesWin(t *testing.T) {
	data := Layout{Title: "Default"}.Bind(fiber.Map{"Title": "Override"})
	assert.Equal(t, "Override", data["Title"])
}
