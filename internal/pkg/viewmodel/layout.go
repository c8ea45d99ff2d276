package viewmodel

import "github.com/gofiber/fiber/v2"

// Layout carries the fields every rendered page shares.
type Layout struct {
	Title      string
	IsLoggedIn bool
	IsStaff    bool
	Username   string
	CSRFToken  string
	Flash      fiber.Map
}

// Bind flattens the layout into a render context, merged with the
// page-specific entries. Page entries win on key collisions.
func (l Layout) Bind(extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Title":      l.Title,
		"IsLoggedIn": l.IsLoggedIn,
		"IsStaff":    l.IsStaff,
		"Username":   l.Username,
		"CSRFToken":  l.CSRFToken,
		"Flash":      l.Flash,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
